package grammar

import "testing"

func TestParseSimpleRule(t *testing.T) {
	g, err := Parse(`Greeting = 'HELLO' Name`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if g.Start != "Greeting" {
		t.Errorf("Start = %q, want %q", g.Start, "Greeting")
	}
	r := g.Rule("Greeting")
	if r.Kind != RSeq || len(r.Items) != 2 {
		t.Fatalf("Greeting rule shape = %+v, want a 2-item sequence", r)
	}
	if r.Items[0].Kind != RToken || r.Items[0].TokenText != "HELLO" {
		t.Errorf("Items[0] = %+v, want Token(HELLO)", r.Items[0])
	}
	if r.Items[1].Kind != RNode || r.Items[1].NodeName != "Name" {
		t.Errorf("Items[1] = %+v, want Node(Name)", r.Items[1])
	}
}

func TestParseAlternationAndQuantifiers(t *testing.T) {
	g, err := Parse(`Stmt = 'A'? 'B'* | 'C'`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	r := g.Rule("Stmt")
	if r.Kind != RAlt || len(r.Items) != 2 {
		t.Fatalf("Stmt rule shape = %+v, want a 2-branch alternation", r)
	}
	seq := r.Items[0]
	if seq.Kind != RSeq || len(seq.Items) != 2 {
		t.Fatalf("first branch = %+v, want a 2-item sequence", seq)
	}
	if seq.Items[0].Kind != ROpt {
		t.Errorf("Items[0] = %+v, want an optional", seq.Items[0])
	}
	if seq.Items[1].Kind != RRep {
		t.Errorf("Items[1] = %+v, want a repetition", seq.Items[1])
	}
}

func TestParseLabeledChild(t *testing.T) {
	g, err := Parse(`Cmp = lhs:Expr 'EQ' rhs:Expr`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	r := g.Rule("Cmp")
	if r.Kind != RSeq || len(r.Items) != 3 {
		t.Fatalf("Cmp rule shape = %+v", r)
	}
	lhs := r.Items[0]
	if lhs.Kind != RLabeled || lhs.Label != "lhs" || lhs.Inner.NodeName != "Expr" {
		t.Errorf("Items[0] = %+v, want Labeled(lhs, Node(Expr))", lhs)
	}
}

func TestParseMultipleRules(t *testing.T) {
	src := `
File = Stmt*
Stmt = 'SELECT' Name
`
	g, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if g.Start != "File" {
		t.Errorf("Start = %q, want File", g.Start)
	}
	if g.Rule("Stmt") == nil {
		t.Errorf("Rule(Stmt) = nil, want a rule")
	}
}

func TestParseRejectsUnterminatedLiteral(t *testing.T) {
	if _, err := Parse(`X = 'unterminated`); err == nil {
		t.Errorf("Parse() error = nil, want an error for an unterminated literal")
	}
}
