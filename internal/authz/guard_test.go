package authz

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"serviceheft/internal/authz/metrics"
	"serviceheft/pkg/domain"
	dErrors "serviceheft/pkg/domain-errors"
	"serviceheft/pkg/requestcontext"
)

type GuardSuite struct {
	suite.Suite
	logs    *bytes.Buffer
	metrics *metrics.Metrics
	guard   *Guard
}

func (s *GuardSuite) SetupTest() {
	s.logs = &bytes.Buffer{}
	s.metrics = metrics.NewWithRegisterer(prometheus.NewRegistry())
	logger := slog.New(slog.NewJSONHandler(s.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s.guard = NewGuard(WithLogger(logger), WithMetrics(s.metrics))
}

func TestGuardSuite(t *testing.T) {
	suite.Run(t, new(GuardSuite))
}

func (s *GuardSuite) TestAllowIsSilentAndCounted() {
	in := Input{Subject: subject(domain.RoleUser), Permission: PermVehicleCreate}

	s.Require().NoError(s.guard.Check(context.Background(), in))
	s.True(s.guard.Can(context.Background(), in))

	s.Empty(s.logs.String())
	s.InDelta(2, testutil.ToFloat64(s.metrics.Decisions.WithLabelValues("vehicle.create", resultAllow)), 0)
}

func (s *GuardSuite) TestForbiddenIsLoggedWithContext() {
	ctx := requestcontext.WithRequestID(context.Background(), "req-42")
	in := Input{
		Subject:    subject(domain.RoleUser),
		Permission: PermVehicleReadOwn,
		Resource:   &Resource{Type: "vehicle", ID: "v9", OwnerUserID: other},
	}

	err := s.guard.Check(ctx, in)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	var entry map[string]any
	s.Require().NoError(json.Unmarshal(s.logs.Bytes(), &entry))
	s.Equal("authorization denied", entry["msg"])
	s.Equal("WARN", entry["level"])
	s.Equal("vehicle.read.own", entry["permission"])
	s.Equal("forbidden", entry["result"])
	s.Equal("req-42", entry["request_id"])
	s.Equal(me, entry["user_id"])
	s.Equal("v9", entry["resource_id"])

	s.InDelta(1, testutil.ToFloat64(s.metrics.Decisions.WithLabelValues("vehicle.read.own", resultForbidden)), 0)
}

func (s *GuardSuite) TestUnauthorizedOmitsUserID() {
	err := s.guard.Check(context.Background(), Input{Subject: domain.Anonymous(), Permission: PermExportRedacted})
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	var entry map[string]any
	s.Require().NoError(json.Unmarshal(s.logs.Bytes(), &entry))
	s.Equal("unauthorized", entry["result"])
	s.NotContains(entry, "user_id")
	s.InDelta(1, testutil.ToFloat64(s.metrics.Decisions.WithLabelValues("export.redacted", resultUnauthorized)), 0)
}

func (s *GuardSuite) TestUnknownPermissionsShareOneLabel() {
	for _, p := range []Permission{"vehicle.launch", "made.up.1", "made.up.2"} {
		s.Error(s.guard.Check(context.Background(), Input{Subject: subject(domain.RoleUser), Permission: p}))
	}

	s.InDelta(3, testutil.ToFloat64(s.metrics.Decisions.WithLabelValues("unknown", resultForbidden)), 0)
	s.Equal(1, testutil.CollectAndCount(s.metrics.Decisions))
}

func TestGuard_WithoutOptionsMatchesAssertCan(t *testing.T) {
	g := NewGuard()
	for _, role := range domain.AllRoles() {
		for _, p := range AllPermissions() {
			in := Input{Subject: subject(role), Permission: p, Resource: userGrant()}
			want := AssertCan(in)
			got := g.Check(context.Background(), in)
			if want == nil {
				require.NoError(t, got, "%s %s", role, p)
				continue
			}
			require.Error(t, got, "%s %s", role, p)
			require.Equal(t, dErrors.CodeOf(want), dErrors.CodeOf(got))
		}
	}
}
