package client

import "sync"

// View identifies a navigable screen.
type View string

const (
	ViewLogin            View = "login"
	ViewUserDashboard    View = "user-dashboard"
	ViewUserCreateTicket View = "user-create-ticket"
	ViewUserSettings     View = "user-settings"
	ViewAdminDashboard   View = "admin-dashboard"
	ViewAdminUsers       View = "admin-users"
)

// State is the whole application state. It is mutated only through the
// store's update channel, never as ambient globals.
type State struct {
	CurrentUser        *User
	Users              []User
	Tickets            []Ticket
	View               View
	ActiveChatTicketID string
	SearchTerm         string
}

// Store serializes state mutations through a single update channel.
type Store struct {
	updates chan func(*State)
	done    chan struct{}

	mu    sync.Mutex
	state State
}

// NewStore starts the update loop with the login view active.
func NewStore() *Store {
	s := &Store{
		updates: make(chan func(*State)),
		done:    make(chan struct{}),
		state:   State{View: ViewLogin},
	}
	go s.loop()
	return s
}

func (s *Store) loop() {
	for update := range s.updates {
		s.mu.Lock()
		update(&s.state)
		s.mu.Unlock()
	}
	close(s.done)
}

// Apply runs an update on the state and returns once it took effect.
func (s *Store) Apply(update func(*State)) {
	applied := make(chan struct{})
	s.updates <- func(st *State) {
		update(st)
		close(applied)
	}
	<-applied
}

// Snapshot returns a copy of the current state. Slices are copied so
// callers cannot mutate held state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.state
	snapshot.Users = append([]User(nil), s.state.Users...)
	snapshot.Tickets = append([]Ticket(nil), s.state.Tickets...)
	return snapshot
}

// Navigate moves to the view when the current user's role permits it.
// Gating is a pure function of the role, re-evaluated on every call.
func (s *Store) Navigate(view View) bool {
	allowed := false
	s.Apply(func(st *State) {
		role := ""
		if st.CurrentUser != nil {
			role = st.CurrentUser.Role
		}
		if CanAccess(role, view) {
			st.View = view
			allowed = true
		}
	})
	return allowed
}

// Close stops the update loop.
func (s *Store) Close() {
	close(s.updates)
	<-s.done
}

// VisibleViews lists the screens reachable for a role.
func VisibleViews(role string) []View {
	switch role {
	case RoleAdmin:
		return []View{ViewAdminDashboard, ViewAdminUsers}
	case RoleUser:
		return []View{ViewUserDashboard, ViewUserCreateTicket, ViewUserSettings}
	default:
		return []View{ViewLogin}
	}
}

// CanAccess reports whether a role may reach a view. The login view is
// always reachable.
func CanAccess(role string, view View) bool {
	if view == ViewLogin {
		return true
	}
	for _, v := range VisibleViews(role) {
		if v == view {
			return true
		}
	}
	return false
}
