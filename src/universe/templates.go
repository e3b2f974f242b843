package universe

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name        string  //template name
	Descr       string  //template descr
	Coordinates [][]int //array of [x,y] coordinates
}

//BlockTemplate is the 2x2 still life with its top-left corner at x,y
func BlockTemplate(x int, y int) Template {
	return Template{
		Name:  "block",
		Descr: "2x2 still life",
		Coordinates: [][]int{
			{x, y}, {x + 1, y},
			{x, y + 1}, {x + 1, y + 1},
		},
	}
}

//BlinkerTemplate is the period-2 oscillator, a horizontal 3-cell line starting at x,y
func BlinkerTemplate(x int, y int) Template {
	return Template{
		Name:        "blinker",
		Descr:       "period-2 oscillator",
		Coordinates: [][]int{{x, y}, {x + 1, y}, {x + 2, y}},
	}
}

//GliderTemplate is the glider with its bounding box top-left corner at x,y
//it travels one cell down-right every 4 generations
func GliderTemplate(x int, y int) Template {
	return Template{
		Name:  "glider",
		Descr: "diagonal spaceship",
		Coordinates: [][]int{
			{x + 1, y},
			{x + 2, y + 1},
			{x, y + 2}, {x + 1, y + 2}, {x + 2, y + 2},
		},
	}
}

//TestSampleTemplate is the test sample with 3 stable patterns
func TestSampleTemplate() Template {
	return Template{
		Name:  "testSample1",
		Descr: "the test sample with 3 stable patterns",
		Coordinates: [][]int{
			{1, 1}, {1, 2},
			{2, 1}, {2, 2},
			{3, 3},
			{4, 2},
			{4, 3},
			{5, 3},
		},
	}
}
