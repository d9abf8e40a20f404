// internal/lobby/directory_test.go
package lobby

import (
	"reflect"
	"testing"
)

func TestAddIsIdempotentPerConnection(t *testing.T) {
	d := NewDirectory()
	conn := NewConn()

	first := d.Add(conn, "alice")
	second := d.Add(conn, "alice")
	if first != second {
		t.Fatalf("expected duplicate enterLobby to return the existing user")
	}
	if len(d.Members()) != 1 {
		t.Fatalf("expected 1 member, got %d", len(d.Members()))
	}
}

func TestSnapshotExcludingPreservesInsertionOrder(t *testing.T) {
	d := NewDirectory()
	a, b, c := NewConn(), NewConn(), NewConn()
	d.Add(a, "alice")
	d.Add(b, "bob")
	d.Add(c, "carol")

	got := d.SnapshotExcluding(b)
	want := []string{"alice", "carol"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRemoveAbsentConnectionIsBenign(t *testing.T) {
	d := NewDirectory()
	conn := NewConn()
	d.Add(conn, "alice")

	d.Remove(conn)
	d.Remove(conn) // disconnect after removal is an expected race
	if len(d.Members()) != 0 {
		t.Fatalf("expected empty directory, got %d members", len(d.Members()))
	}
}

func TestFindReturnsFirstMatch(t *testing.T) {
	d := NewDirectory()
	first, second := NewConn(), NewConn()
	d.Add(first, "alice")
	d.Add(second, "alice") // duplicate names are convention, not enforced

	u := d.Find("alice")
	if u == nil || u.Conn.ID != first.ID {
		t.Fatalf("expected the first alice")
	}
	if d.Find("nobody") != nil {
		t.Fatalf("expected nil for unknown name")
	}
}
