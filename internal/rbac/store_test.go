package rbac

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededStore() *Store {
	return NewStore(DefaultRoles())
}

func ids(roles []Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, r.ID)
	}

	return out
}

func TestNewRole(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		role      string
		perms     string
		users     string
		wantUsers string
		wantErr   bool
	}{
		{name: "complete", id: "1", role: "Admin", perms: "Full access", users: "3", wantUsers: "3"},
		{name: "blank users defaults", id: "2", role: "QA", perms: "Read", users: "", wantUsers: DefaultUsers},
		{name: "missing id", id: "", role: "QA", perms: "Read", wantErr: true},
		{name: "missing name", id: "3", role: "", perms: "Read", wantErr: true},
		{name: "missing permissions", id: "3", role: "QA", perms: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRole(tt.id, tt.role, tt.perms, tt.users)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, Role{}, r)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantUsers, r.Users)
		})
	}
}

func TestMustRole_Panics(t *testing.T) {
	assert.Panics(t, func() { MustRole("", "", "", "") })
}

func TestStore_ListRolesIsCopy(t *testing.T) {
	s := newSeededStore()

	roles := s.ListRoles()
	roles[0].Role = "changed"

	assert.Equal(t, "Admin", s.ListRoles()[0].Role)
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(s.ListRoles()))
}

func TestStore_AddAppendsWithDefaultUsers(t *testing.T) {
	s := newSeededStore()

	s.ToggleForm()
	s.SetDraftFields("QA", "Read", "")

	assert.True(t, s.Add())

	roles := s.ListRoles()
	require.Len(t, roles, 5)
	assert.Equal(t, Role{ID: "5", Role: "QA", Permissions: "Read", Users: "0"}, roles[4])
	assert.Equal(t, FormDraft{}, s.Draft())
	assert.Equal(t, FormHidden, s.Draft().State())
}

func TestStore_AddRejectsIncompleteDraft(t *testing.T) {
	tests := []struct {
		name  string
		role  string
		perms string
	}{
		{name: "empty name", role: "", perms: "Read"},
		{name: "empty permissions", role: "QA", perms: ""},
		{name: "both empty", role: "", perms: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSeededStore()
			s.ToggleForm()
			s.SetDraftFields(tt.role, tt.perms, "7")

			assert.False(t, s.Add())
			assert.Len(t, s.ListRoles(), 4)

			// form stays open with what was typed
			d := s.Draft()
			assert.True(t, d.Visible)
			assert.Equal(t, tt.role, d.RoleName)
			assert.Equal(t, "7", d.UsersCount)
		})
	}
}

func TestStore_AddCountsOnlySuccessfulCalls(t *testing.T) {
	s := NewStore(nil)
	inputs := []struct{ role, perms string }{
		{"A", "x"}, {"", "x"}, {"B", "y"}, {"C", ""}, {"D", "z"},
	}

	var ok int

	for _, in := range inputs {
		s.SetDraftFields(in.role, in.perms, "")
		if s.Add() {
			ok++
		}
	}

	assert.Equal(t, 3, ok)
	assert.Len(t, s.ListRoles(), ok)
}

func TestStore_DeleteThenAddRepeatsID(t *testing.T) {
	s := newSeededStore()

	s.Delete("2")
	assert.Equal(t, []string{"1", "3", "4"}, ids(s.ListRoles()))

	s.SetDraftFields("QA", "Read", "")
	require.True(t, s.Add())

	// len(roles)+1 after the delete is 4, which is still taken
	assert.Equal(t, []string{"1", "3", "4", "4"}, ids(s.ListRoles()))
}

func TestStore_DeleteRemovesAllMatches(t *testing.T) {
	s := NewStore([]Role{
		MustRole("1", "A", "x", ""),
		MustRole("2", "B", "y", ""),
		MustRole("1", "C", "z", ""),
	})

	s.Delete("1")

	assert.Equal(t, []string{"2"}, ids(s.ListRoles()))
}

func TestStore_DeleteUnknownIsNoop(t *testing.T) {
	s := newSeededStore()
	before := s.ListRoles()

	var events int

	s.Subscribe(func(Event) { events++ })
	s.Delete("42")

	assert.Equal(t, before, s.ListRoles())
	assert.Zero(t, events)
}

func TestStore_EditRoleCopiesFields(t *testing.T) {
	s := newSeededStore()

	s.EditRole("3")

	d := s.Draft()
	assert.Equal(t, FormDraft{
		EditID:      "3",
		RoleName:    "Viewer",
		Permissions: "Read",
		UsersCount:  "12",
		IsEditing:   true,
		Visible:     true,
	}, d)
	assert.Equal(t, FormEditing, d.State())
}

func TestStore_EditRoleUnknownIsNoop(t *testing.T) {
	s := newSeededStore()

	s.EditRole("99")

	assert.Equal(t, FormDraft{}, s.Draft())
}

func TestStore_UpdateWithoutChangesKeepsRole(t *testing.T) {
	s := newSeededStore()
	before := s.ListRoles()

	s.EditRole("2")
	require.True(t, s.Update())

	assert.Equal(t, before, s.ListRoles())
	assert.Equal(t, FormDraft{}, s.Draft())
}

func TestStore_UpdateOverwritesFirstMatch(t *testing.T) {
	s := NewStore([]Role{
		MustRole("1", "A", "x", "1"),
		MustRole("1", "B", "y", "2"),
	})

	s.EditRole("1")
	s.SetDraftFields("Renamed", "All", "")
	require.True(t, s.Update())

	roles := s.ListRoles()
	assert.Equal(t, Role{ID: "1", Role: "Renamed", Permissions: "All", Users: "0"}, roles[0])
	assert.Equal(t, Role{ID: "1", Role: "B", Permissions: "y", Users: "2"}, roles[1])
}

func TestStore_UpdatePreconditions(t *testing.T) {
	t.Run("not editing", func(t *testing.T) {
		s := newSeededStore()
		s.ToggleForm()
		s.SetDraftFields("QA", "Read", "")

		assert.False(t, s.Update())
		assert.Len(t, s.ListRoles(), 4)
		assert.True(t, s.Draft().Visible)
	})

	t.Run("name cleared", func(t *testing.T) {
		s := newSeededStore()
		before := s.ListRoles()

		s.EditRole("1")
		s.SetDraftFields("", "Full access", "2")

		assert.False(t, s.Update())
		assert.Equal(t, before, s.ListRoles())
		assert.Equal(t, FormEditing, s.Draft().State())
	})
}

func TestStore_ToggleFormTwiceClearsDraft(t *testing.T) {
	s := newSeededStore()

	s.ToggleForm()
	assert.Equal(t, FormCreating, s.Draft().State())

	s.SetDraftFields("half", "typed", "3")
	s.ToggleForm()

	assert.Equal(t, FormDraft{}, s.Draft())
	assert.Len(t, s.ListRoles(), 4)
}

func TestStore_ToggleCancelsEdit(t *testing.T) {
	s := newSeededStore()

	s.EditRole("1")
	s.ToggleForm()

	assert.Equal(t, FormDraft{}, s.Draft())
}

func TestStore_Subscribe(t *testing.T) {
	s := newSeededStore()

	var got []Event

	unsubscribe := s.Subscribe(func(ev Event) { got = append(got, ev) })

	s.ToggleForm()
	s.SetDraftFields("QA", "Read", "")
	s.Add()
	s.Delete("1")

	unsubscribe()
	s.ToggleForm()

	require.Len(t, got, 4)
	assert.Equal(t, OpToggle, got[0].Op)
	assert.Equal(t, OpDraft, got[1].Op)
	assert.Equal(t, Event{Op: OpAdd, RoleID: "5", Count: 5}, got[2])
	assert.Equal(t, Event{Op: OpDelete, RoleID: "1", Count: 4}, got[3])
}

func TestStore_ListenerMayReadStore(t *testing.T) {
	s := newSeededStore()

	var seen int

	s.Subscribe(func(Event) { seen = len(s.ListRoles()) })
	s.Delete("4")

	assert.Equal(t, 3, seen)
}

func TestStore_ConcurrentAdds(t *testing.T) {
	s := NewStore(nil)

	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			s.SetDraftFields("r", "p", "")
			s.Add()
			_ = s.ListRoles()
		}()
	}

	wg.Wait()

	// draft writes race with commits, so only an upper bound holds
	assert.LessOrEqual(t, len(s.ListRoles()), 50)
	assert.NotEmpty(t, s.ListRoles())
}

func TestStore_CommitAddsOrUpdates(t *testing.T) {
	s := newSeededStore()

	s.ToggleForm()
	require.True(t, s.Commit("QA", "Read", ""))
	assert.Equal(t, Role{ID: "5", Role: "QA", Permissions: "Read", Users: DefaultUsers}, s.ListRoles()[4])
	assert.Equal(t, FormHidden, s.Draft().State())

	s.EditRole("2")
	require.True(t, s.Commit("Writer", "Write", "9"))
	assert.Equal(t, Role{ID: "2", Role: "Writer", Permissions: "Write", Users: "9"}, s.ListRoles()[1])
	assert.Len(t, s.ListRoles(), 5)
}

func TestStore_CommitRejectedKeepsFields(t *testing.T) {
	s := newSeededStore()

	s.ToggleForm()
	assert.False(t, s.Commit("QA", "", "3"))

	d := s.Draft()
	assert.Equal(t, FormCreating, d.State())
	assert.Equal(t, "QA", d.RoleName)
	assert.Equal(t, "3", d.UsersCount)
	assert.Len(t, s.ListRoles(), 4)
}

func TestStore_CommitIsNotSplitByListeners(t *testing.T) {
	s := newSeededStore()

	var ops []Op

	s.Subscribe(func(ev Event) {
		ops = append(ops, ev.Op)

		if ev.Op == OpDraft {
			s.EditRole("2")
		}
	})

	s.ToggleForm()
	require.True(t, s.Commit("QA", "Read", ""))

	roles := s.ListRoles()
	require.Len(t, roles, 5)
	assert.Equal(t, "QA", roles[4].Role)
	assert.Equal(t, "Editor", roles[1].Role)
	assert.Equal(t, []Op{OpToggle, OpDraft, OpEdit, OpAdd}, ops)
}

func TestFormState_String(t *testing.T) {
	assert.Equal(t, "hidden", FormHidden.String())
	assert.Equal(t, "creating", FormCreating.String())
	assert.Equal(t, "editing", FormEditing.String())
}
