package model

// YouTube search.list response structure (part=id)
type SearchListResponse struct {
	Items []struct {
		ID struct {
			Kind    string `json:"kind"`
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
	NextPageToken string `json:"nextPageToken,omitempty"`
}

// YouTube channels.list response structure (part=contentDetails)
type ChannelListResponse struct {
	Items []struct {
		ContentDetails struct {
			RelatedPlaylists struct {
				Uploads string `json:"uploads"`
			} `json:"relatedPlaylists"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// YouTube playlistItems.list response structure (part=contentDetails)
type PlaylistItemsResponse struct {
	Items []struct {
		ContentDetails struct {
			VideoID string `json:"videoId"`
		} `json:"contentDetails"`
	} `json:"items"`
	NextPageToken string `json:"nextPageToken,omitempty"`
}
