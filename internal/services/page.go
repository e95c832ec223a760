package services

// Page is an offset/limit window over an id-ordered listing.
type Page struct {
	Offset int
	Limit  int
}
