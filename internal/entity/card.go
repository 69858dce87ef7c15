package entity

// Card is one face of a matching pair.
type Card[C comparable] struct {
	ID        int  `json:"id"`
	Content   C    `json:"content"`
	IsFaceUp  bool `json:"is_face_up"`
	IsMatched bool `json:"is_matched"`
	IsSeen    bool `json:"is_seen"`
}

// IsPotentialMatch reports whether the card is revealed and still waiting for its pair.
func (that Card[C]) IsPotentialMatch() bool {
	return that.IsFaceUp && !that.IsMatched
}

func (that *Card[C]) turnFaceUp() {
	that.IsFaceUp = true
}

// turnFaceDown hides the card. A card that goes face-down unmatched counts as seen.
func (that *Card[C]) turnFaceDown() {
	if that.IsFaceUp && !that.IsMatched {
		that.IsSeen = true
	}
	that.IsFaceUp = false
}
