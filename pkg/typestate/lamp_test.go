package typestate

// A hand-written peripheral used by the package tests. Generated code
// follows the same shape.

type lamp struct {
	level int
}

func (*lamp) Graph() *Graph { return lampGraph }

var lampGraph = NewBuilder("Lamp").
	States("Off", "On", "Dim").
	Initial("Off").
	Edge("switchOn", "Off", "On").
	Edge("dim", "On", "Dim").
	Edge("switchOff", "On", "Off").
	Edge("switchOff", "Dim", "Off").
	MustBuild()

type lampOff struct{}

func (lampOff) StateName() string { return "Off" }
func (lampOff) CarriedBy(*lamp)   {}
func (lampOff) InitialOf(*lamp)   {}

type lampOn struct{}

func (lampOn) StateName() string { return "On" }
func (lampOn) CarriedBy(*lamp)   {}

type lampDim struct{}

func (lampDim) StateName() string { return "Dim" }
func (lampDim) CarriedBy(*lamp)   {}

type switchOnEdge struct{}

func (switchOnEdge) Allow(*lamp, lampOff, lampOn) {}
func (switchOnEdge) EdgeName() string            { return "switchOn" }

type dimEdge struct{}

func (dimEdge) Allow(*lamp, lampOn, lampDim) {}
func (dimEdge) EdgeName() string            { return "dim" }

type switchOffFromDimEdge struct{}

func (switchOffFromDimEdge) Allow(*lamp, lampDim, lampOff) {}
func (switchOffFromDimEdge) EdgeName() string             { return "switchOff" }
