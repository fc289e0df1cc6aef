package types

// Page 爬虫抓下来的一个网页：第一行URL，第二行深度，其余是HTML
type Page struct {
	URL   string
	Depth int
	HTML  string
}
