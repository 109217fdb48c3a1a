package domain

// Transport mode carried by plan legs and agent preferences.
type TransportMode string

const (
	ModeCar  TransportMode = "car"
	ModePT   TransportMode = "pt"
	ModeWalk TransportMode = "walk"
	ModeBike TransportMode = "bike"
)

// Demographic and mobility attributes shared by every synthesized agent.
// Person is embedded by the two concrete variants, Child and Adult.
type Person struct {
	ID                  string
	Age                 int
	Home                *Building
	HasCar              bool
	UsesPublicTransport bool
	PreferredTransport  TransportMode

	// Optional amenity preferences assigned during location assignment.
	PreferredShop       *Building
	PreferredHealthcare *Building
}

// Agent is the closed variant set over Child and Adult.
// Plan generation dispatches on the concrete type.
type Agent interface {
	Profile() *Person
}

// A minor household member. Children in the kindergarten/primary band carry
// NeedsDropoff and travel inside an adult's plan rather than their own.
type Child struct {
	Person
	School       *Building
	NeedsDropoff bool
}

func (c *Child) Profile() *Person { return &c.Person }

// An adult household member. When any child of the household needs escorting,
// exactly one adult is designated the dropper: NeedsToDropoffChildren is set
// and Children holds precisely the children needing escort.
type Adult struct {
	Person
	Employed               bool
	IsStudent              bool
	Work                   *Building
	WorkType               string
	Children               []*Child
	NeedsToDropoffChildren bool
}

func (a *Adult) Profile() *Person { return &a.Person }

// One synthesized household: a shared home plus its members.
// Member slices are fully populated before plan generation begins.
type Household struct {
	Home     *Building
	Adults   []*Adult
	Children []*Child
}

// Total number of agents the household contributes.
func (h *Household) Size() int {
	return len(h.Adults) + len(h.Children)
}
