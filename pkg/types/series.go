package types

// Series is a derived aggregate over the games that reference it by name.
// A series row exists only while at least one game points at it: the store
// creates it on first reference and deletes it when the count drops to zero.
type Series struct {
	Name          string  `json:"name"`
	NumGames      int     `json:"num_games"`
	TotalPlaytime float64 `json:"total_playtime"`
}
