package query

import "testing"

func allValues(e *Expr) []string {
	var out []string
	for _, c := range e.Clauses {
		for _, p := range c.Preds {
			out = append(out, p.Value)
		}
	}
	return out
}

func hasValue(e *Expr, v string) bool {
	for _, got := range allValues(e) {
		if got == v {
			return true
		}
	}
	return false
}

func TestCompileEmptyInput(t *testing.T) {
	c := Compile(Input{})
	if !c.Expr.Empty() {
		t.Errorf("empty input must compile to the unconstrained expression, got %+v", c.Expr)
	}
	if c.Order != OrderDefault {
		t.Errorf("order = %v", c.Order)
	}
	if c.Title != "" || c.Country != "" {
		t.Errorf("labels = %q %q", c.Title, c.Country)
	}
}

func TestCompileTitleCore(t *testing.T) {
	c := Compile(Input{Title: "Senior Gopher"})
	if len(c.Expr.Clauses) != 1 {
		t.Fatalf("clauses = %d", len(c.Expr.Clauses))
	}
	cl := c.Expr.Clauses[0]
	if len(cl.Preds) != 3 {
		t.Fatalf("title clause spans %d columns", len(cl.Preds))
	}
	wantCols := []Column{ColTitleNorm, ColTitle, ColDescription}
	for i, p := range cl.Preds {
		if p.Col != wantCols[i] || p.Op != OpLike || p.Value != "%senior gopher%" {
			t.Errorf("pred %d = %+v", i, p)
		}
	}
}

func TestCompileRemoteWidensToLocation(t *testing.T) {
	c := Compile(Input{Title: "remote gopher"})
	if !c.Flags.Remote {
		t.Fatal("remote flag not set")
	}
	// core clause + remote clause
	if len(c.Expr.Clauses) != 2 {
		t.Fatalf("clauses = %d", len(c.Expr.Clauses))
	}
	remote := c.Expr.Clauses[1]
	if len(remote.Preds) != 4 || remote.Preds[3].Col != ColLocation {
		t.Errorf("remote clause = %+v", remote)
	}
}

func TestCompileDeveloperFanOut(t *testing.T) {
	c := Compile(Input{Title: "developer"})
	if !c.Flags.Developer {
		t.Fatal("developer flag not set")
	}
	// "developer" is consumed by the flag, so only the fan-out clause remains.
	if len(c.Expr.Clauses) != 1 {
		t.Fatalf("clauses = %d", len(c.Expr.Clauses))
	}
	fan := c.Expr.Clauses[0]
	// 5 synonym terms over 3 columns each
	if len(fan.Preds) != 15 {
		t.Errorf("fan-out preds = %d", len(fan.Preds))
	}
	if !hasValue(c.Expr, "%software engineer%") {
		t.Error("fan-out misses the software engineer term")
	}
}

func TestCompileCountryCode(t *testing.T) {
	c := Compile(Input{Country: "Switzerland"})
	if c.Country != "CH" {
		t.Fatalf("country label = %q", c.Country)
	}
	if len(c.Expr.Clauses) != 1 {
		t.Fatalf("clauses = %d", len(c.Expr.Clauses))
	}
	cl := c.Expr.Clauses[0]
	for _, p := range cl.Preds {
		if p.Col != ColLocation {
			t.Errorf("country pred targets %s", p.Col)
		}
	}
	// token pattern, alias name, city hint
	if !hasValue(c.Expr, "% ch %") {
		t.Error("missing separator token pattern")
	}
	if !hasValue(c.Expr, "%switzerland%") {
		t.Error("missing alias name pattern")
	}
	found := false
	for _, p := range cl.Preds {
		if p.Op == OpEq && p.Value == "zurich" {
			found = true
		}
	}
	if !found {
		t.Error("missing city hint equality")
	}
}

func TestCompileEU(t *testing.T) {
	c := Compile(Input{Country: "europe"})
	if c.Country != "EU" {
		t.Fatalf("country label = %q", c.Country)
	}
	if c.Order != OrderRandom {
		t.Errorf("order = %v", c.Order)
	}
	if !hasValue(c.Expr, "%eu%") {
		t.Error("missing bare eu pattern")
	}
	if !hasValue(c.Expr, "%germany%") || !hasValue(c.Expr, "%france%") {
		t.Error("missing member alias names")
	}
	if !hasValue(c.Expr, "% de %") {
		t.Error("missing member token pattern")
	}
}

func TestCompileEUConfiguredSet(t *testing.T) {
	c := Compile(Input{Country: "eu", EUCodes: []string{"DE"}})
	if hasValue(c.Expr, "% fr %") {
		t.Error("configured set should exclude FR")
	}
	if !hasValue(c.Expr, "% de %") {
		t.Error("configured set should include DE")
	}
}

func TestCompileHighPay(t *testing.T) {
	c := Compile(Input{Country: "high pay"})
	if c.Country != "HIGH_PAY" {
		t.Fatalf("country label = %q", c.Country)
	}
	if c.Order != OrderHighPay {
		t.Errorf("order = %v", c.Order)
	}
	if len(c.Expr.Clauses) != 1 {
		t.Fatalf("clauses = %d", len(c.Expr.Clauses))
	}
	cl := c.Expr.Clauses[0]
	// substring + exact per city, default city list
	if len(cl.Preds) != 10 {
		t.Errorf("high pay preds = %d", len(cl.Preds))
	}
	if !hasValue(c.Expr, "%san francisco%") {
		t.Error("missing san francisco pattern")
	}
}

func TestCompileFreeTextEscapes(t *testing.T) {
	c := Compile(Input{Country: "zorro_50%"})
	if len(c.Expr.Clauses) != 1 || len(c.Expr.Clauses[0].Preds) != 1 {
		t.Fatalf("expr = %+v", c.Expr)
	}
	p := c.Expr.Clauses[0].Preds[0]
	if p.Value != `%zorro\_50\%%` {
		t.Errorf("pattern = %q", p.Value)
	}
	if c.Country != "zorro_50%" {
		t.Errorf("label = %q", c.Country)
	}
}

func TestCodeTokenPreds(t *testing.T) {
	preds := codeTokenPreds("CH")
	// 5 leading separators x (5 trailing separators + end-of-string)
	if len(preds) != 30 {
		t.Fatalf("preds = %d", len(preds))
	}
	var values []string
	for _, p := range preds {
		values = append(values, p.Value)
	}
	for _, want := range []string{"% ch %", "%(ch)%", "%,ch,%", "% ch", "%-ch"} {
		found := false
		for _, v := range values {
			if v == want {
				found = true
			}
		}
		if !found {
			t.Errorf("missing pattern %q", want)
		}
	}
}
