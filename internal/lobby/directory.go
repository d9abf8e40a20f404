// internal/lobby/directory.go
package lobby

// User is a lobby member: a self-declared display name bound to a live
// connection. The Directory does not own the connection, it only references it.
type User struct {
	Name string
	Conn *Conn
}

// Directory is the ordered set of users currently in the lobby. It is owned
// by the coordinator and must only be touched under its lock. Insertion order
// is preserved and is the only ordering guarantee for snapshots.
type Directory struct {
	users []*User
}

// NewDirectory returns an empty Directory.
func NewDirectory() *Directory {
	return &Directory{}
}

// Add registers conn under name and returns the new member. Duplicate
// enterLobby messages are idempotent: if conn is already present its existing
// entry is returned unchanged. A duplicate name on a different connection is
// not rejected here; the /login pre-check is advisory only.
func (d *Directory) Add(conn *Conn, name string) *User {
	for _, u := range d.users {
		if u.Conn.ID == conn.ID {
			return u
		}
	}
	u := &User{Name: name, Conn: conn}
	d.users = append(d.users, u)
	return u
}

// Remove deletes the member bound to conn. Removing an absent connection is
// benign; disconnect-after-removal is an expected race.
func (d *Directory) Remove(conn *Conn) {
	for i, u := range d.users {
		if u.Conn.ID == conn.ID {
			d.users = append(d.users[:i], d.users[i+1:]...)
			return
		}
	}
}

// Find returns the first member with the given display name, or nil. Names
// are unique by convention, not enforcement.
func (d *Directory) Find(name string) *User {
	for _, u := range d.users {
		if u.Name == name {
			return u
		}
	}
	return nil
}

// FindByConn returns the member bound to conn, or nil.
func (d *Directory) FindByConn(conn *Conn) *User {
	for _, u := range d.users {
		if u.Conn.ID == conn.ID {
			return u
		}
	}
	return nil
}

// SnapshotExcluding returns every other member's name in insertion order.
func (d *Directory) SnapshotExcluding(conn *Conn) []string {
	names := make([]string, 0, len(d.users))
	for _, u := range d.users {
		if u.Conn.ID != conn.ID {
			names = append(names, u.Name)
		}
	}
	return names
}

// Members returns the membership slice in insertion order. Callers must not
// mutate it; the coordinator lock covers iteration.
func (d *Directory) Members() []*User {
	return d.users
}
