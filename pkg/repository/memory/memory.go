package memory

import (
	"github.com/secmon-lab/vetplan/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	request *requestRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		request: newRequestRepository(),
	}
}

func (m *Memory) Request() interfaces.RequestRepository {
	return m.request
}

func (m *Memory) Close() error {
	return nil
}
