package services

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"healthtrack-server/models"
	"healthtrack-server/store"
)

// Fixture is the YAML document read by the seed command.
type Fixture struct {
	Users []FixtureUser `yaml:"users"`
}

type FixtureUser struct {
	Name          string   `yaml:"name"`
	Email         string   `yaml:"email"`
	Password      string   `yaml:"password"`
	Gender        string   `yaml:"gender"`
	ActivityLevel string   `yaml:"activityLevel"`
	Points        int      `yaml:"points"`
	CurrentStreak int      `yaml:"currentStreak"`
	Friends       []string `yaml:"friends"`
}

func LoadFixture(r io.Reader) (*Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}

type SeedReport struct {
	Created     int
	Skipped     int
	Friendships int
}

// Seeder loads fixtures through the regular services so passwords are
// hashed and friendships go through request and accept.
type Seeder struct {
	svc   *Services
	users store.Users
	log   *zap.Logger
}

func NewSeeder(svc *Services, users store.Users, log *zap.Logger) *Seeder {
	return &Seeder{svc: svc, users: users, log: log}
}

// Apply is idempotent: users whose email already exists are left alone and
// existing friendships are not requested again.
func (s *Seeder) Apply(ctx context.Context, f *Fixture) (SeedReport, error) {
	var report SeedReport
	ids := make(map[string]string, len(f.Users))

	for _, fu := range f.Users {
		_, u, err := s.svc.Auth.Register(ctx, models.RegisterRequest{
			Name:          fu.Name,
			Email:         fu.Email,
			Password:      fu.Password,
			Gender:        fu.Gender,
			ActivityLevel: fu.ActivityLevel,
		})
		switch {
		case err == nil:
			report.Created++
			if fu.Points != 0 {
				if _, err := s.svc.Points.Adjust(ctx, u.ID, ActionManual, fu.Points); err != nil {
					return report, fmt.Errorf("seed points for %s: %w", fu.Email, err)
				}
			}
			if fu.CurrentStreak > 0 {
				if err := s.svc.Streaks.Set(ctx, u.ID, fu.CurrentStreak); err != nil {
					return report, fmt.Errorf("seed streak for %s: %w", fu.Email, err)
				}
			}
		case err == ErrEmailTaken:
			report.Skipped++
			u, err = s.users.GetByEmail(ctx, fu.Email)
			if err != nil {
				return report, fmt.Errorf("lookup %s: %w", fu.Email, err)
			}
		default:
			return report, fmt.Errorf("register %s: %w", fu.Email, err)
		}
		ids[fu.Email] = u.ID
	}

	for _, fu := range f.Users {
		for _, friendEmail := range fu.Friends {
			friendID, ok := ids[friendEmail]
			if !ok {
				return report, fmt.Errorf("%s lists unknown friend %s", fu.Email, friendEmail)
			}
			err := s.svc.Friends.SendRequest(ctx, ids[fu.Email], friendEmail)
			// The sentinels share the CONFLICT code, so compare identity.
			if err == ErrAlreadyFriends {
				continue
			}
			if err != nil && err != ErrRequestPending {
				return report, fmt.Errorf("friend %s -> %s: %w", fu.Email, friendEmail, err)
			}
			if err := s.svc.Friends.AcceptRequest(ctx, friendID, ids[fu.Email]); err != nil {
				return report, fmt.Errorf("accept %s -> %s: %w", fu.Email, friendEmail, err)
			}
			report.Friendships++
		}
	}

	s.log.Info("seed_applied",
		zap.Int("created", report.Created),
		zap.Int("skipped", report.Skipped),
		zap.Int("friendships", report.Friendships),
	)
	return report, nil
}
