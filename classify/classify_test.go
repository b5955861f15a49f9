package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cocodems/elections/refdata"
)

func TestClassify_Rules(t *testing.T) {
	c := New(Options{})

	cases := []struct {
		title, office, jurisdiction, rule string
	}{
		{"Alderperson City of Lodi", "Alderperson", "City of Lodi", "alderperson-lodi"},
		{"School Board Member Rio Community School District", "School Board Member", "Rio Community School District", "school-board-member"},
		{"Alderperson Columbus District 2", "Alderperson District 2", "City of Columbus", "alderperson-columbus-district"},
		{"Alderperson District 4", "Alderperson District 4", "City of Portage", "alderperson-portage-district"},
		{"County Supervisor District 12", "County Supervisor District 12", "Columbia County", "county-supervisor"},
		{"Circuit Court Judge Branch 3 Columbia County", "Circuit Court Judge Branch 3", "Columbia County Circuit Court", "circuit-court-judge-branch"},
		{"Circuit Court Judge", "Circuit Court Judge", "Columbia County Circuit Court", "circuit-court-judge"},
		{"Sanitary District Commissioner Town of Lewiston", "Sanitary District Commissioner", "Town of Lewiston", "sanitary-district-commissioner"},
		{"Municipal Judge City of Portage", "Multi-jurisdictional Judge", "City of Portage Multi-jurisdiction", "municipal-judge"},
		{"Multi-jurisdictional Judge Eastern", "Multi-jurisdictional Judge", "Eastern Multi-jurisdiction", "multi-jurisdictional-judge"},
		{"City of Wisconsin Dells Alderperson District 3", "Alderperson District 3", "City of Wisconsin Dells", "alderperson"},
		{"Sheriff", "Sheriff", "Columbia County", "county-office-sheriff"},
		{"Treasurer", "County Treasurer", "Columbia County", "county-office-treasurer"},
		{"Register of Deeds", "Register of Deeds", "Columbia County", "county-office-register-of-deeds"},
	}
	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			r := c.Classify(tc.title)
			assert.Equal(t, tc.office, r.Office)
			assert.Equal(t, tc.jurisdiction, r.Jurisdiction)
			assert.Equal(t, tc.rule, r.Rule)
		})
	}
}

func TestClassify_MarkerAndFallback(t *testing.T) {
	c := New(Options{})

	r := c.Classify("Town Board Supervisor 1 Town of Fountain Prairie")
	assert.Equal(t, Result{Office: "Town Board Supervisor 1", Jurisdiction: "Town of Fountain Prairie", Rule: "marker"}, r)

	r = c.Classify("Village President Village of Pardeeville")
	assert.Equal(t, "Village President", r.Office)
	assert.Equal(t, "Village of Pardeeville", r.Jurisdiction)

	r = c.Classify("City of Lodi")
	assert.Equal(t, Result{Jurisdiction: "City of Lodi", Rule: "marker"}, r, "a bare jurisdiction has no office")

	r = c.Classify("Mystery  Office")
	assert.Equal(t, Result{Office: "Mystery Office", Rule: "fallback"}, r)
}

func TestClassify_SchoolDistrictOfRewrite(t *testing.T) {
	c := New(Options{Jurisdictions: []string{"Poynette School District", "Portage Community School District"}})

	r := c.Classify("Board Member School District of Poynette")
	assert.Equal(t, Result{Office: "Board Member", Jurisdiction: "Poynette School District", Rule: "reference"}, r)

	r = c.Classify("Board Member School District of Portage Community - Area 2")
	assert.Equal(t, "Portage Community School District", r.Jurisdiction)
}

func TestClassify_ReferenceLists(t *testing.T) {
	c := New(Options{
		Jurisdictions: []string{"Lodi", "City of Lodi", "Town of Arlington"},
		Offices:       []string{"Mayor", "Town Chairperson"},
	})

	r := c.Classify("City of Lodi Mayor")
	assert.Equal(t, Result{Office: "Mayor", Jurisdiction: "City of Lodi", Rule: "reference"}, r)

	r = c.Classify("Town Chairperson Town of Arlington")
	assert.Equal(t, Result{Office: "Town Chairperson", Jurisdiction: "Town of Arlington", Rule: "reference"}, r)
}

func TestClassify_Standardization(t *testing.T) {
	c := New(Options{Standard: refdata.StandardNames{
		"town of pacific":  "Town of Pacific (Columbia)",
		"town chairperson": "Town Board Chairperson",
	}})
	r := c.Classify("Town Chairperson Town of Pacific")
	assert.Equal(t, "Town Board Chairperson", r.Office)
	assert.Equal(t, "Town of Pacific (Columbia)", r.Jurisdiction)
}

func TestClassifyCandidate_AldersTable(t *testing.T) {
	c := New(Options{Alders: refdata.Alders{"amy adams": "City of Columbus"}})

	r := c.ClassifyCandidate("Alderperson District 1", "Amy Adams")
	assert.Equal(t, Result{Office: "Alderperson District 1", Jurisdiction: "City of Columbus", Rule: "alders-table"}, r)

	r = c.ClassifyCandidate("Alderperson District 1", "Someone Else")
	assert.Equal(t, "City of Portage", r.Jurisdiction)

	r = c.ClassifyCandidate("Mayor City of Lodi", "Amy Adams")
	assert.Equal(t, "City of Lodi", r.Jurisdiction)
}

func TestClassify_CustomCounty(t *testing.T) {
	c := New(Options{County: "Sauk County"})
	r := c.Classify("District Attorney")
	assert.Equal(t, "Sauk County", r.Jurisdiction)
}
