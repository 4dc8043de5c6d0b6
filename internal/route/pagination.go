package route

import "strconv"

const PageSize = 9

// resolvePage clamps a requested page into [1, pages]. An empty catalog has
// a single empty page.
func resolvePage(total, requested int) (number, pages int) {
	pages = (total + PageSize - 1) / PageSize
	if pages < 1 {
		pages = 1
	}
	number = requested
	if number < 1 {
		number = 1
	}
	if number > pages {
		number = pages
	}
	return number, pages
}

// ParsePage reads a page query value; anything that is not a positive
// integer is page 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
