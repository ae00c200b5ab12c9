package store

import (
	"errors"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	m := NewMemoryStore()

	if _, err := m.Load("u1", NamespaceProgression); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	if err := m.Save("u1", NamespaceProgression, []byte(`{"level":3}`)); err != nil {
		t.Fatal(err)
	}
	data, err := m.Load("u1", NamespaceProgression)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"level":3}` {
		t.Errorf("loaded %q", data)
	}

	// Namespaces are independent.
	if _, err := m.Load("u1", NamespaceStreakProtection); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound for unrelated namespace", err)
	}
}

func TestMemoryStoreCopiesData(t *testing.T) {
	m := NewMemoryStore()
	buf := []byte("original")
	if err := m.Save("u1", NamespaceProgression, buf); err != nil {
		t.Fatal(err)
	}
	buf[0] = 'X'

	data, err := m.Load("u1", NamespaceProgression)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "original" {
		t.Errorf("store aliased caller buffer: %q", data)
	}

	data[0] = 'Y'
	again, _ := m.Load("u1", NamespaceProgression)
	if string(again) != "original" {
		t.Errorf("load aliased internal buffer: %q", again)
	}
}

func TestMemoryStoreDeleteAndUsers(t *testing.T) {
	m := NewMemoryStore()
	m.Save("b", NamespaceProgression, []byte("1"))
	m.Save("a", NamespaceAchievements, []byte("2"))

	users, err := m.Users()
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 2 || users[0] != "a" || users[1] != "b" {
		t.Errorf("users = %v, want [a b] sorted", users)
	}

	if err := m.Delete("b", NamespaceProgression); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Load("b", NamespaceProgression); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v after delete, want ErrNotFound", err)
	}
	// Deleting a missing blob is a no-op.
	if err := m.Delete("nobody", NamespaceProgression); err != nil {
		t.Errorf("delete of missing blob: %v", err)
	}
}
