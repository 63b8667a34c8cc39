package registry

import (
	"testing"
)

type stubPowerUp struct{ kind string }

func (s stubPowerUp) Kind() string               { return s.kind }
func (s stubPowerUp) Title() string              { return "Stub " + s.kind }
func (s stubPowerUp) Activate(Arena, Activation) {}

func TestRegisterAndCreate(t *testing.T) {
	Register("stubA", func() PowerUp { return stubPowerUp{"stubA"} })
	Register("stubB", func() PowerUp { return stubPowerUp{"stubB"} })

	if !Exists("stubA") {
		t.Fatal("stubA should be registered")
	}
	p, err := Create("stubB")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if p.Kind() != "stubB" {
		t.Errorf("Kind() = %q, expected stubB", p.Kind())
	}
	if got := Title("stubA"); got != "Stub stubA" {
		t.Errorf("Title() = %q", got)
	}
	if got := Title("nothing"); got != "nothing" {
		t.Errorf("Title() of unknown kind = %q", got)
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create() of unknown kind should fail")
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].Kind > list[i].Kind {
			t.Errorf("List() not sorted: %v", list)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stubDup", func() PowerUp { return stubPowerUp{"stubDup"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stubDup", func() PowerUp { return stubPowerUp{"stubDup"} })
}
