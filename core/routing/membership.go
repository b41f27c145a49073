package routing

import (
	"errors"
	"sort"
	"sync"

	"github.com/pyropy/vault/core/model"
	"github.com/pyropy/vault/lib/utils"
)

const DefaultGroupSize = 8

var (
	ErrNotJoined = errors.New("node has not joined the network")
)

// Membership is this node's view of the network. The close group of a name is
// the GroupSize known nodes nearest to it by XOR distance.
type Membership struct {
	mu sync.RWMutex

	self      model.XorName
	groupSize int
	nodes     []model.XorName
	joined    bool
}

func NewMembership(self model.XorName, groupSize int) *Membership {
	if groupSize <= 0 {
		groupSize = DefaultGroupSize
	}

	return &Membership{
		self:      self,
		groupSize: groupSize,
		nodes:     []model.XorName{self},
	}
}

func (m *Membership) Self() model.XorName {
	return m.self
}

// Update replaces the known node set. The local node is always a member.
func (m *Membership) Update(nodes []model.XorName) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := append([]model.XorName{m.self}, nodes...)
	m.nodes = utils.Unique(all)
	m.joined = true
}

func (m *Membership) Nodes() []model.XorName {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]model.XorName(nil), m.nodes...)
}

func (m *Membership) CloseGroup(name model.XorName) ([]model.XorName, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.joined {
		return nil, ErrNotJoined
	}

	sorted := append([]model.XorName(nil), m.nodes...)
	sort.Slice(sorted, func(i, j int) bool {
		return model.CloserTo(name, sorted[i], sorted[j])
	})

	group := sorted[:min(m.groupSize, len(sorted))]
	if !utils.Contains(group, m.self) {
		return nil, nil
	}

	return group, nil
}
