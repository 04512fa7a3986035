package game

// Deliverer hands a server event to one connected player. Delivery is
// best-effort and must never block the caller.
type Deliverer interface {
	Deliver(playerID, event string, payload any)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

// WordPicker selects the secret category and word for a round.
type WordPicker interface {
	Pick(region string, banned []string) (category, word string, err error)
}

// WordCorpus exposes the static region/category structure to clients.
type WordCorpus interface {
	HasRegion(region string) bool
	CategoriesByRegion() map[string][]string
}
