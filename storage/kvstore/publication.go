package kvstore

import "github.com/edunova/colegio/core/publication"

// PublicationRepo implements publication.Repository on the shared DB handle.
type PublicationRepo struct {
	db *DB
}

var _ publication.Repository = (*PublicationRepo)(nil)

func NewPublicationRepo(db *DB) *PublicationRepo {
	return &PublicationRepo{db: db}
}

func (repo *PublicationRepo) QueryAllPublications() ([]publication.Publication, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	pubs := make([]publication.Publication, len(repo.db.publications))
	copy(pubs, repo.db.publications)
	return pubs, nil
}

func (repo *PublicationRepo) GetPublicationByID(id string) (publication.Publication, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, pub := range repo.db.publications {
		if pub.ID == id {
			return pub, nil
		}
	}
	return publication.Publication{}, publication.ErrNotFound
}

// CreatePublication prepends so listings stay newest first.
func (repo *PublicationRepo) CreatePublication(pub publication.Publication) (publication.Publication, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if pub.ID == "" {
		pub.ID = newID("p")
	}
	repo.db.publications = append([]publication.Publication{pub}, repo.db.publications...)
	if err := saveSlot(repo.db, slotPublications, repo.db.publications); err != nil {
		return publication.Publication{}, err
	}
	return pub, nil
}

func (repo *PublicationRepo) DeletePublicationsByID(ids ...string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	pubs := make([]publication.Publication, 0, len(repo.db.publications))
	for _, pub := range repo.db.publications {
		keep := true
		for _, id := range ids {
			if pub.ID == id {
				keep = false
				break
			}
		}
		if keep {
			pubs = append(pubs, pub)
		}
	}
	repo.db.publications = pubs
	return saveSlot(repo.db, slotPublications, repo.db.publications)
}
