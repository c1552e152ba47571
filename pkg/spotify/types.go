package spotify

// tokenResponse is the token endpoint's reply for the client-credentials
// grant.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// apiError is the JSON envelope Spotify wraps errors in.
type apiError struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// Artist is a simplified artist object.
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Album is a simplified album object from search results.
type Album struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	AlbumType    string            `json:"album_type"`
	Artists      []Artist          `json:"artists"`
	ReleaseDate  string            `json:"release_date"`
	TotalTracks  int               `json:"total_tracks"`
	ExternalURLs map[string]string `json:"external_urls"`
}

// Link returns the album's public Spotify URL, or "" if none was provided.
func (a Album) Link() string {
	return a.ExternalURLs["spotify"]
}

// searchResponse is the shape of /search replies for type=album.
type searchResponse struct {
	Albums struct {
		Items []Album `json:"items"`
		Total int     `json:"total"`
	} `json:"albums"`
}
