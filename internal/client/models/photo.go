package models

// PhotoURLs are the renditions the photo API offers for one image.
type PhotoURLs struct {
	Raw     string `json:"raw"`
	Full    string `json:"full"`
	Regular string `json:"regular"`
	Small   string `json:"small"`
	Thumb   string `json:"thumb"`
}

type ProfileImage struct {
	Small  string `json:"small"`
	Medium string `json:"medium"`
	Large  string `json:"large"`
}

// PhotoUser is the author of a photo.
type PhotoUser struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Name         string       `json:"name"`
	ProfileImage ProfileImage `json:"profile_image"`
}

// Photo is one feed item. It is immutable once fetched and identified by ID.
type Photo struct {
	ID             string    `json:"id"`
	CreatedAt      string    `json:"created_at"`
	Width          int       `json:"width"`
	Height         int       `json:"height"`
	Color          string    `json:"color"`
	Description    *string   `json:"description"`
	AltDescription *string   `json:"alt_description"`
	URLs           PhotoURLs `json:"urls"`
	User           PhotoUser `json:"user"`
	Likes          int       `json:"likes"`
}

// Caption returns the description, falling back to the alt description.
// Both are optional upstream; an empty string means there is nothing to show.
func (p Photo) Caption() string {
	if p.Description != nil && *p.Description != "" {
		return *p.Description
	}
	if p.AltDescription != nil {
		return *p.AltDescription
	}
	return ""
}

// Author is the display name of the photographer.
func (p Photo) Author() string {
	if p.User.Name != "" {
		return p.User.Name
	}
	return p.User.Username
}

// SearchResult is the envelope returned by the photo search endpoint.
type SearchResult struct {
	Total      int     `json:"total"`
	TotalPages int     `json:"total_pages"`
	Results    []Photo `json:"results"`
}
