package universe

type Universe interface {
	Status() Status
	Options() Options
	Area() Area
	IsAlive(x int, y int) (bool, error)
	AgeAt(x int, y int) (int, error)
	Dimensions() (width int, height int)
	StateCh() chan Status
	AddTemplate(tmpl Template)
	SettleTemplate(name string) error
	SettleWithRandomData()
	Settle(vc [][]int) error
	InverseCell(x int, y int) error
	RegisterViewer(v Viewer)
	Run()
	Stop()
	Step()
	Clear()
	Close()
}
