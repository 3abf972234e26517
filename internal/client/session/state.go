package session

import "github.com/avasilyev/cmskeeper/internal/client/models"

// State is the composite value navigation observes. User carries a meaningful
// identity only when Status is StatusAuthenticated; for the other statuses it
// is always models.Empty. States are replaced wholesale, never mutated.
type State struct {
	Status Status
	User   models.User
}

func Unknown() State {
	return State{Status: StatusUnknown, User: models.Empty}
}

func Unauthenticated() State {
	return State{Status: StatusUnauthenticated, User: models.Empty}
}

func Authenticated(user models.User) State {
	return State{Status: StatusAuthenticated, User: user}
}
