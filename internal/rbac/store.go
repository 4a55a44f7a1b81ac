package rbac

import (
	"strconv"
	"sync"
)

// FormState is the presentation state of the role form.
type FormState int

const (
	// FormHidden means no form is shown and the draft is empty.
	FormHidden FormState = iota
	// FormCreating means the form is open for a new role.
	FormCreating
	// FormEditing means the form is open for an existing role.
	FormEditing
)

// String implements fmt.Stringer.
func (s FormState) String() string {
	switch s {
	case FormCreating:
		return "creating"
	case FormEditing:
		return "editing"
	default:
		return "hidden"
	}
}

// FormDraft is the single in-progress add or edit.
type FormDraft struct {
	EditID      string `json:"editId"`
	RoleName    string `json:"roleName"`
	Permissions string `json:"permissions"`
	UsersCount  string `json:"usersCount"`
	IsEditing   bool   `json:"isEditing"`
	Visible     bool   `json:"visible"`
}

// State reports which form state the draft represents.
func (d FormDraft) State() FormState {
	switch {
	case !d.Visible:
		return FormHidden
	case d.IsEditing:
		return FormEditing
	default:
		return FormCreating
	}
}

// Op names a mutation announced to listeners.
type Op string

// Mutations announced by Store.
const (
	OpToggle Op = "toggle"
	OpEdit   Op = "edit"
	OpDraft  Op = "draft"
	OpAdd    Op = "add"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Event describes a mutation that has been applied.
type Event struct {
	Op     Op
	RoleID string
	Count  int
}

// Listener receives events after the mutation is visible to readers.
type Listener func(Event)

// Store owns the role list and the form draft.
// Invalid input never surfaces as an error: the operation just does nothing.
type Store struct {
	mu        sync.RWMutex
	roles     []Role
	draft     FormDraft
	listeners map[int]Listener
	nextID    int
}

// NewStore returns a store holding a copy of seed.
func NewStore(seed []Role) *Store {
	roles := make([]Role, len(seed))
	copy(roles, seed)

	return &Store{
		roles:     roles,
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers fn for change notifications and returns the function that removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		delete(s.listeners, id)
	}
}

// ListRoles returns the roles in insertion order.
func (s *Store) ListRoles() []Role {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Role, len(s.roles))
	copy(out, s.roles)

	return out
}

// Draft returns the current form draft.
func (s *Store) Draft() FormDraft {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.draft
}

// SetDraftFields replaces the three editable draft fields, keeping edit mode and visibility.
func (s *Store) SetDraftFields(roleName, permissions, usersCount string) {
	s.mu.Lock()
	s.draft.RoleName = roleName
	s.draft.Permissions = permissions
	s.draft.UsersCount = usersCount
	ev := s.event(OpDraft, s.draft.EditID)
	s.mu.Unlock()

	s.notify(ev)
}

// ToggleForm shows or hides the form. Hiding discards the draft.
func (s *Store) ToggleForm() {
	s.mu.Lock()
	visible := !s.draft.Visible
	if visible {
		s.draft.Visible = true
	} else {
		s.draft = FormDraft{}
	}
	ev := s.event(OpToggle, "")
	s.mu.Unlock()

	s.notify(ev)
}

// EditRole opens the form on the first role with the given id. Unknown ids are ignored.
func (s *Store) EditRole(id string) {
	s.mu.Lock()

	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}

	r := s.roles[i]
	s.draft = FormDraft{
		EditID:      id,
		RoleName:    r.Role,
		Permissions: r.Permissions,
		UsersCount:  r.Users,
		IsEditing:   true,
		Visible:     true,
	}
	ev := s.event(OpEdit, id)
	s.mu.Unlock()

	s.notify(ev)
}

// Add appends a role built from the draft and closes the form.
// It needs a role name and permissions; otherwise nothing changes and false is returned.
//
// The new id is len(roles)+1, so after a delete it can repeat an existing id.
func (s *Store) Add() bool {
	s.mu.Lock()
	ev, ok := s.add()
	s.mu.Unlock()

	if ok {
		s.notify(ev)
	}

	return ok
}

// Update writes the draft back onto the role being edited and closes the form.
// It needs an edit id, a role name and permissions; otherwise nothing changes and false is returned.
func (s *Store) Update() bool {
	s.mu.Lock()
	ev, ok := s.update()
	s.mu.Unlock()

	if ok {
		s.notify(ev)
	}

	return ok
}

// Commit sets the draft fields and then updates the edited role, or adds a new one,
// all under one lock. A rejected commit keeps the fields in the open form.
func (s *Store) Commit(roleName, permissions, usersCount string) bool {
	s.mu.Lock()
	s.draft.RoleName = roleName
	s.draft.Permissions = permissions
	s.draft.UsersCount = usersCount
	draftEv := s.event(OpDraft, s.draft.EditID)

	var (
		ev Event
		ok bool
	)

	if s.draft.IsEditing {
		ev, ok = s.update()
	} else {
		ev, ok = s.add()
	}
	s.mu.Unlock()

	s.notify(draftEv)

	if ok {
		s.notify(ev)
	}

	return ok
}

// add must be called with s.mu held.
func (s *Store) add() (Event, bool) {
	if s.draft.RoleName == "" || s.draft.Permissions == "" {
		return Event{}, false
	}

	id := strconv.Itoa(len(s.roles) + 1)
	s.roles = append(s.roles, Role{
		ID:          id,
		Role:        s.draft.RoleName,
		Permissions: s.draft.Permissions,
		Users:       usersOrDefault(s.draft.UsersCount),
	})
	s.draft = FormDraft{}

	return s.event(OpAdd, id), true
}

// update must be called with s.mu held.
func (s *Store) update() (Event, bool) {
	d := s.draft
	if d.EditID == "" || d.RoleName == "" || d.Permissions == "" {
		return Event{}, false
	}

	if i := s.indexOf(d.EditID); i >= 0 {
		s.roles[i].Role = d.RoleName
		s.roles[i].Permissions = d.Permissions
		s.roles[i].Users = usersOrDefault(d.UsersCount)
	}

	s.draft = FormDraft{}

	return s.event(OpUpdate, d.EditID), true
}

// Delete removes every role with the given id.
func (s *Store) Delete(id string) {
	s.mu.Lock()

	kept := s.roles[:0]
	for _, r := range s.roles {
		if r.ID != id {
			kept = append(kept, r)
		}
	}

	removed := len(s.roles) - len(kept)
	// clear the tail so dropped roles are not kept alive by the backing array
	for i := len(kept); i < len(s.roles); i++ {
		s.roles[i] = Role{}
	}
	s.roles = kept

	if removed == 0 {
		s.mu.Unlock()
		return
	}

	ev := s.event(OpDelete, id)
	s.mu.Unlock()

	s.notify(ev)
}

// indexOf must be called with s.mu held.
func (s *Store) indexOf(id string) int {
	for i := range s.roles {
		if s.roles[i].ID == id {
			return i
		}
	}

	return -1
}

// event must be called with s.mu held.
func (s *Store) event(op Op, roleID string) Event {
	return Event{Op: op, RoleID: roleID, Count: len(s.roles)}
}

func (s *Store) notify(ev Event) {
	s.mu.RLock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn(ev)
	}
}
