package browse

import "testing"

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry(24)

	id, created := r.Create()
	if id == "" || created == nil {
		t.Fatal("expected a view with an id")
	}

	got, ok := r.Get(id)
	if !ok || got != created {
		t.Fatalf("expected to get the created view back, ok=%v", ok)
	}

	id2, _ := r.Create()
	if id2 == id {
		t.Fatal("expected unique ids")
	}

	r.Remove(id)
	if _, ok := r.Get(id); ok {
		t.Fatal("expected view removed")
	}
}
