package report

import (
	"errors"
	"time"

	"go.uber.org/zap"
)

// Document is every race recovered from one report.
type Document struct {
	Format       string
	ElectionDate time.Time
	Races        []Race
	// Skipped counts blocks dropped as unparseable, short, or referenda.
	Skipped int
	// UnmatchedLines counts lines inside kept races that were not candidate rows.
	UnmatchedLines int
}

// Parse segments text with f and parses every block. Unparseable blocks are
// logged and skipped; only segmentation failures are returned as errors.
func Parse(text string, f Format, log *zap.Logger) (*Document, error) {
	seg, err := f.Segment(text)
	if err != nil {
		return nil, err
	}

	doc := &Document{Format: f.Name(), ElectionDate: seg.ElectionDate}
	for _, b := range seg.Blocks {
		race, err := f.ParseBlock(b)
		switch {
		case err == nil:
		case errors.Is(err, ErrReferendum):
			log.Info("skipping referendum", zap.Int("block", b.Index), zap.String("title", b.Lines[0]))
			doc.Skipped++
			continue
		case errors.Is(err, ErrShortBlock):
			log.Warn("skipping short block", zap.Int("block", b.Index), zap.Strings("lines", b.Lines))
			doc.Skipped++
			continue
		default:
			log.Warn("skipping unparseable block",
				zap.Int("block", b.Index),
				zap.Strings("lines", b.Lines),
				zap.Error(err),
			)
			doc.Skipped++
			continue
		}
		for _, line := range race.Unmatched {
			log.Warn("skipping non-candidate line",
				zap.Int("block", b.Index),
				zap.String("race", race.Title),
				zap.String("line", line),
			)
		}
		doc.UnmatchedLines += len(race.Unmatched)
		doc.Races = append(doc.Races, *race)
	}
	return doc, nil
}
