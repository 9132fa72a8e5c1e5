package pip

// Exported for white-box testing.
var (
	ParseList = parseList
	ParseShow = parseShow
)
