package vktor

import "testing"

func TestKindString(t *testing.T) {
	if got := KindInt.String(); got != "int" {
		t.Errorf("KindInt.String() = %q, want %q", got, "int")
	}
	if got := Kind(-1).String(); got != "<unknown>" {
		t.Errorf("Kind(-1).String() = %q, want %q", got, "<unknown>")
	}
	if got := numKinds.String(); got != "<unknown>" {
		t.Errorf("numKinds.String() = %q, want %q", got, "<unknown>")
	}
}

func TestContainerString(t *testing.T) {
	if got := ContainerObject.String(); got != "object" {
		t.Errorf("ContainerObject.String() = %q, want %q", got, "object")
	}
	if got := ContainerNone.String(); got != "<none>" {
		t.Errorf("ContainerNone.String() = %q, want %q", got, "<none>")
	}
}

func TestStatusString(t *testing.T) {
	if got := StatusComplete.String(); got != "complete" {
		t.Errorf("StatusComplete.String() = %q, want %q", got, "complete")
	}
}
