package models

// EngagementKind selects which pair of mirrored sets a toggle operates
// on: the post-side likes/saves set and the user-side
// likedPosts/savedPosts set.
type EngagementKind string

const (
	EngagementLike EngagementKind = "like"
	EngagementSave EngagementKind = "save"
)

// PostField is the Post document field holding the engaged user ids.
func (k EngagementKind) PostField() string {
	if k == EngagementSave {
		return "saves"
	}
	return "likes"
}

// UserField is the User document field mirroring PostField.
func (k EngagementKind) UserField() string {
	if k == EngagementSave {
		return "savedPosts"
	}
	return "likedPosts"
}

// Noun is the singular noun used in formatted counts.
func (k EngagementKind) Noun() string {
	return string(k)
}
