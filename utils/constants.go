package utils

// YouTube Data API v3 per-call limits.
const (
	MaxCommentsPerPage = 100 // commentThreads.list page cap
	MaxSearchPerPage   = 50  // search.list page cap
	StatsBatchSize     = 50  // videos.list id batch cap
)

var CategoryMap = map[string]string{
	"1":  "Film & Animation",
	"2":  "Autos & Vehicles",
	"10": "Music",
	"15": "Pets & Animals",
	"17": "Sports",
	"19": "Travel & Events",
	"20": "Gaming",
	"22": "People & Blogs",
	"23": "Comedy",
	"24": "Entertainment",
	"25": "News & Politics",
	"26": "Howto & Style",
	"27": "Education",
	"28": "Science & Technology",
}

func CategoryName(categoryID string) string {
	if name, exists := CategoryMap[categoryID]; exists {
		return name
	}
	return "General"
}
