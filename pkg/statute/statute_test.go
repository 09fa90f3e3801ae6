package statute

import "testing"

func TestCitationString(t *testing.T) {
	tests := []struct {
		name string
		c    Citation
		want string
	}{
		{"state code", Citation{Prefix: "WV", SectionNumber: "11-15-3"}, "WV-11-15-3"},
		{"federal regulation", Citation{Prefix: "CFR", TitleOrCode: "Code of Federal Regulations", SectionNumber: "40.1500.10"}, "CFR-40.1500.10"},
		{"letter suffix", Citation{Prefix: "HI", SectionNumber: "231-1.5"}, "HI-231-1.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultTitle(t *testing.T) {
	if got := DefaultTitle("11-15-3"); got != "Section 11-15-3" {
		t.Errorf("DefaultTitle() = %q", got)
	}
}

func TestWalkOrder(t *testing.T) {
	root := Subsection{
		Identifier: "a",
		Children: []Subsection{
			{Identifier: "1", Children: []Subsection{{Identifier: "A"}}},
			{Identifier: "2"},
		},
	}

	var order []string
	root.Walk(func(s Subsection) { order = append(order, s.Identifier) })

	want := []string{"a", "1", "A", "2"}
	if len(order) != len(want) {
		t.Fatalf("visited %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("visit %d = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestCountNodes(t *testing.T) {
	s := &Section{
		Subsections: []Subsection{
			{Identifier: "a"},
			{Identifier: "b", Children: []Subsection{
				{Identifier: "1"},
				{Identifier: "2", Children: []Subsection{{Identifier: "A"}}},
			}},
		},
	}
	if got := s.CountNodes(); got != 5 {
		t.Errorf("CountNodes() = %d, want 5", got)
	}

	empty := &Section{}
	if got := empty.CountNodes(); got != 0 {
		t.Errorf("CountNodes() on empty section = %d, want 0", got)
	}
}
