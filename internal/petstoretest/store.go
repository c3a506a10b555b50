package petstoretest

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/petstore-api-tests/internal/pets"
)

// ErrNotFound is returned when a pet is not stored or not yet readable.
var ErrNotFound = errors.New("pet not found")

// Store is the in-memory pet catalog behind the fake server.
type Store struct {
	mu      sync.RWMutex
	pets    map[int64]*storedPet
	readLag int
	now     func() time.Time
}

type storedPet struct {
	pet       pets.Pet
	createdAt time.Time
	updatedAt time.Time
	// hiddenReads counts the reads that still answer 404 after a write.
	hiddenReads int
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{
		pets: map[int64]*storedPet{},
		now:  time.Now,
	}
}

// Save inserts or replaces a pet.
func (s *Store) Save(pet pets.Pet) pets.Pet {
	s.mu.Lock()
	defer s.mu.Unlock()

	timestamp := s.now()
	stored := &storedPet{pet: normalize(pet), createdAt: timestamp, updatedAt: timestamp}
	if entry, ok := s.pets[pet.ID]; ok {
		stored.createdAt = entry.createdAt
	} else {
		stored.hiddenReads = s.readLag
	}
	s.pets[pet.ID] = stored
	return stored.pet.Clone()
}

// Get fetches a pet if present and visible.
func (s *Store) Get(id int64) (pets.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.pets[id]
	if !ok {
		return pets.Pet{}, ErrNotFound
	}
	if entry.hiddenReads > 0 {
		entry.hiddenReads--
		return pets.Pet{}, ErrNotFound
	}
	return entry.pet.Clone(), nil
}

// Delete removes a pet.
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pets[id]; !ok {
		return ErrNotFound
	}
	delete(s.pets, id)
	return nil
}

// List returns all pets ordered by id.
func (s *Store) List() []pets.Pet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]pets.Pet, 0, len(s.pets))
	for _, entry := range s.pets {
		list = append(list, entry.pet.Clone())
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// Reset drops every pet.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pets = map[int64]*storedPet{}
}

func (s *Store) setReadLag(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readLag = n
}

// normalize mirrors the live API, which always answers with array fields.
func normalize(p pets.Pet) pets.Pet {
	p = p.Clone()
	if p.PhotoURLs == nil {
		p.PhotoURLs = []string{}
	}
	if p.Tags == nil {
		p.Tags = []pets.Tag{}
	}
	return p
}
