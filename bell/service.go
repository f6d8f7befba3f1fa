package bell

import "github.com/sirupsen/logrus"

// ServiceName is the hub name of Service
const ServiceName = "bell"

// Service wraps Player for the service hub
// Degrades to a silent bell when no player is available
type Service struct {
	cfg    Config
	opts   []PlayerOption
	player *Player
}

// NewService creates a bell service; Init may still replace cfg
func NewService(cfg Config, opts ...PlayerOption) *Service {
	return &Service{cfg: cfg, opts: opts}
}

// Name implements service.Service
func (s *Service) Name() string {
	return ServiceName
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements service.Service
// Recognized args: Config, logrus.FieldLogger; others are ignored
func (s *Service) Init(args ...any) error {
	opts := s.opts
	for _, arg := range args {
		switch a := arg.(type) {
		case Config:
			s.cfg = a
		case logrus.FieldLogger:
			opts = append(opts, WithLogger(a))
		}
	}
	p, err := NewPlayer(s.cfg, opts...)
	if err != nil {
		return err
	}
	s.player = p
	return nil
}

// Start implements service.Service
func (s *Service) Start() error {
	if s.player == nil {
		return nil
	}
	return s.player.Start()
}

// Stop implements service.Service
func (s *Service) Stop() error {
	if s.player != nil {
		s.player.Stop()
	}
	return nil
}

// Ring plays sound if the bell is enabled and not rate limited
func (s *Service) Ring(sound Sound) bool {
	if s.player == nil {
		return false
	}
	return s.player.Ring(sound)
}

// Player returns the underlying player, nil before Init
func (s *Service) Player() *Player {
	return s.player
}
