package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/promoarcade/snakesladders/internal/api/apierr"
	"github.com/promoarcade/snakesladders/internal/api/response"
	"github.com/promoarcade/snakesladders/internal/factory"
	"github.com/promoarcade/snakesladders/internal/services/adminauth"
	"github.com/promoarcade/snakesladders/internal/testutil"
)

type APITestSuite struct {
	suite.Suite
	app    *factory.TestApp
	router http.Handler
}

func (s *APITestSuite) SetupTest() {
	app, err := factory.NewTestApp()
	s.Require().NoError(err)
	s.app = app

	s.router = NewRouter(RouterConfig{
		Logger:         testutil.NopLogger(),
		GameController: app.GameController,
		GrantsService:  app.GrantsService,
		AuthService:    app.AuthService,
		Storage:        app.Storage,
		Clock:          app.Clock,
	})
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

// do performs a request against the router and returns the recorder
func (s *APITestSuite) do(method, path string, body any, admin bool) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.SetBasicAuth(adminauth.DefaultUsername, adminauth.DefaultPassword)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *APITestSuite) decode(rec *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(out))
}

func (s *APITestSuite) errorCode(rec *httptest.ResponseRecorder) string {
	var errResp apierr.ErrorResponse
	s.decode(rec, &errResp)
	return errResp.Error.Code
}

func (s *APITestSuite) registerPlayer(email, area string) response.Player {
	rec := s.do(http.MethodPost, "/api/v1/players/register",
		map[string]string{"email": email, "area": area}, false)
	s.Require().Equal(http.StatusCreated, rec.Code)

	var player response.Player
	s.decode(rec, &player)
	return player
}

func (s *APITestSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/api/v1/health", nil, false)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"ok"}`, rec.Body.String())
}

func (s *APITestSuite) TestRegisterAndState() {
	player := s.registerPlayer("Alice@Example.com", "north")
	s.Equal("alice@example.com", player.Email)
	s.Equal("NORTH", player.Area)
	s.Equal(3, player.RollsAvailable)

	rec := s.do(http.MethodGet, "/api/v1/players/state?email=alice@example.com&area=NORTH", nil, false)
	s.Equal(http.StatusOK, rec.Code)

	var state response.Player
	s.decode(rec, &state)
	s.Equal(0, state.Position)
}

func (s *APITestSuite) TestRegisterValidation() {
	rec := s.do(http.MethodPost, "/api/v1/players/register",
		map[string]string{"email": "alice@example.com"}, false)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(apierr.CodeInvalidRequest, s.errorCode(rec))
}

func (s *APITestSuite) TestLoginUnknownPlayer() {
	rec := s.do(http.MethodPost, "/api/v1/players/login",
		map[string]string{"email": "ghost@example.com", "area": "NORTH"}, false)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(apierr.CodePlayerNotFound, s.errorCode(rec))
}

func (s *APITestSuite) TestRollFlow() {
	s.registerPlayer("alice@example.com", "NORTH")

	s.app.MockRandom.QueueDie(4)
	rec := s.do(http.MethodPost, "/api/v1/players/roll",
		map[string]string{"email": "alice@example.com", "area": "NORTH"}, false)
	s.Require().Equal(http.StatusOK, rec.Code)

	var roll response.Roll
	s.decode(rec, &roll)
	s.Equal(4, roll.DieValue)
	s.Equal(4, roll.ToPosition)
	s.Equal(2, roll.RollsAvailable)
}

func (s *APITestSuite) TestRollExhaustionConflict() {
	s.registerPlayer("alice@example.com", "NORTH")

	s.app.MockRandom.QueueDie(1, 1, 1)
	for i := 0; i < 3; i++ {
		rec := s.do(http.MethodPost, "/api/v1/players/roll",
			map[string]string{"email": "alice@example.com", "area": "NORTH"}, false)
		s.Require().Equal(http.StatusOK, rec.Code)
	}

	rec := s.do(http.MethodPost, "/api/v1/players/roll",
		map[string]string{"email": "alice@example.com", "area": "NORTH"}, false)
	s.Equal(http.StatusConflict, rec.Code)
	s.Equal(apierr.CodeNoRollsRemaining, s.errorCode(rec))
}

func (s *APITestSuite) TestCompletionFlow() {
	s.registerPlayer("alice@example.com", "NORTH")

	// Five sixes walk 6, 12, 18, 24, 30 without touching a jump square.
	// Registration grants 3 rolls, so top up with 2 more.
	rec := s.do(http.MethodPost, "/api/v1/admin/grants", map[string]any{
		"area":   "NORTH",
		"amount": 2,
		"emails": []string{"alice@example.com"},
	}, true)
	s.Require().Equal(http.StatusOK, rec.Code)

	s.app.MockRandom.QueueDie(6, 6, 6, 6, 6)
	var roll response.Roll
	for i := 0; i < 5; i++ {
		rec := s.do(http.MethodPost, "/api/v1/players/roll",
			map[string]string{"email": "alice@example.com", "area": "NORTH"}, false)
		s.Require().Equal(http.StatusOK, rec.Code)
		s.decode(rec, &roll)
	}

	s.True(roll.Completed)
	s.Require().NotNil(roll.Reward)
	s.Equal(10, *roll.Reward)

	// Further rolls conflict
	rec = s.do(http.MethodPost, "/api/v1/players/roll",
		map[string]string{"email": "alice@example.com", "area": "NORTH"}, false)
	s.Equal(http.StatusConflict, rec.Code)
	s.Equal(apierr.CodeAlreadyCompleted, s.errorCode(rec))
}

func (s *APITestSuite) TestAdminRequiresAuth() {
	rec := s.do(http.MethodGet, "/api/v1/admin/players?area=NORTH", nil, false)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(apierr.CodeUnauthorized, s.errorCode(rec))
}

func (s *APITestSuite) TestAdminRejectsBadCredentials() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/players?area=NORTH", nil)
	req.SetBasicAuth(adminauth.DefaultUsername, "wrong")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(apierr.CodeInvalidCredentials, s.errorCode(rec))
}

func (s *APITestSuite) TestAdminLogin() {
	rec := s.do(http.MethodPost, "/api/v1/admin/login", map[string]string{
		"username": adminauth.DefaultUsername,
		"password": adminauth.DefaultPassword,
	}, false)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/admin/login", map[string]string{
		"username": adminauth.DefaultUsername,
		"password": "wrong",
	}, false)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *APITestSuite) TestAdminListPlayers() {
	s.registerPlayer("bob@example.com", "NORTH")
	s.registerPlayer("alice@example.com", "NORTH")

	rec := s.do(http.MethodGet, "/api/v1/admin/players?area=north", nil, true)
	s.Require().Equal(http.StatusOK, rec.Code)

	var list response.PlayerList
	s.decode(rec, &list)
	s.Equal("NORTH", list.Area)
	s.Require().Len(list.Players, 2)
	s.Equal("alice@example.com", list.Players[0].Email)
}

func (s *APITestSuite) TestAdminResetAndDelete() {
	s.registerPlayer("alice@example.com", "NORTH")

	s.app.MockRandom.QueueDie(4)
	rec := s.do(http.MethodPost, "/api/v1/players/roll",
		map[string]string{"email": "alice@example.com", "area": "NORTH"}, false)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/admin/players/reset",
		map[string]string{"email": "alice@example.com", "area": "NORTH"}, true)
	s.Require().Equal(http.StatusOK, rec.Code)

	var player response.Player
	s.decode(rec, &player)
	s.Equal(0, player.Position)
	s.Equal(3, player.RollsGranted)

	rec = s.do(http.MethodDelete, "/api/v1/admin/players?email=alice@example.com&area=NORTH", nil, true)
	s.Equal(http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/players/state?email=alice@example.com&area=NORTH", nil, false)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *APITestSuite) TestGrantAndUndo() {
	s.registerPlayer("alice@example.com", "NORTH")

	rec := s.do(http.MethodPost, "/api/v1/admin/grants", map[string]any{
		"area":   "NORTH",
		"amount": 5,
		"emails": []string{"alice@example.com", "ghost@example.com"},
	}, true)
	s.Require().Equal(http.StatusOK, rec.Code)

	var grant response.Grant
	s.decode(rec, &grant)
	s.Equal([]string{"alice@example.com"}, grant.AffectedEmails)

	rec = s.do(http.MethodPost, "/api/v1/admin/grants/undo",
		map[string]string{"area": "NORTH"}, true)
	s.Require().Equal(http.StatusOK, rec.Code)

	var undone response.UndoneGrant
	s.decode(rec, &undone)
	s.Equal(5, undone.Amount)

	rec = s.do(http.MethodGet, "/api/v1/players/state?email=alice@example.com&area=NORTH", nil, false)
	var player response.Player
	s.decode(rec, &player)
	s.Equal(3, player.RollsGranted)

	// The undo consumed the area's only ledger entry
	rec = s.do(http.MethodPost, "/api/v1/admin/grants/undo",
		map[string]string{"area": "NORTH"}, true)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(apierr.CodeNoGrantHistory, s.errorCode(rec))
}

func (s *APITestSuite) TestGrantWholeArea() {
	s.registerPlayer("alice@example.com", "NORTH")
	s.registerPlayer("bob@example.com", "NORTH")

	// No email list: every player in the area gets the rolls
	rec := s.do(http.MethodPost, "/api/v1/admin/grants", map[string]any{
		"area":   "NORTH",
		"amount": 2,
	}, true)
	s.Require().Equal(http.StatusOK, rec.Code)

	var grant response.Grant
	s.decode(rec, &grant)
	s.ElementsMatch([]string{"alice@example.com", "bob@example.com"}, grant.AffectedEmails)

	rec = s.do(http.MethodGet, "/api/v1/players/state?email=bob@example.com&area=NORTH", nil, false)
	var player response.Player
	s.decode(rec, &player)
	s.Equal(5, player.RollsGranted)
}

func (s *APITestSuite) TestGrantZeroAmountRejected() {
	rec := s.do(http.MethodPost, "/api/v1/admin/grants", map[string]any{
		"area":   "NORTH",
		"amount": 0,
		"emails": []string{"alice@example.com"},
	}, true)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(apierr.CodeInvalidGrantAmount, s.errorCode(rec))
}

func (s *APITestSuite) TestUndoWithNoHistory() {
	rec := s.do(http.MethodPost, "/api/v1/admin/grants/undo",
		map[string]string{"area": "NORTH"}, true)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(apierr.CodeNoGrantHistory, s.errorCode(rec))
}

func (s *APITestSuite) TestPrizeConfigRoundTrip() {
	rec := s.do(http.MethodGet, "/api/v1/admin/areas/NORTH/prize", nil, true)
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPut, "/api/v1/admin/areas/north/prize",
		map[string]int{"max_high_tier_winners": 3}, true)
	s.Require().Equal(http.StatusOK, rec.Code)

	var cfg response.PrizeConfig
	s.decode(rec, &cfg)
	s.Equal("NORTH", cfg.Area)
	s.Equal(3, cfg.MaxHighTierWinners)

	rec = s.do(http.MethodGet, "/api/v1/admin/areas/NORTH/prize", nil, true)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &cfg)
	s.Equal(3, cfg.MaxHighTierWinners)
}

func (s *APITestSuite) TestChangePassword() {
	rec := s.do(http.MethodPost, "/api/v1/admin/change-password", map[string]string{
		"current_password": adminauth.DefaultPassword,
		"new_password":     "brand-new-password",
	}, true)
	s.Equal(http.StatusNoContent, rec.Code)

	// Old credentials no longer work
	rec = s.do(http.MethodGet, "/api/v1/admin/players?area=NORTH", nil, true)
	s.Equal(http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/players?area=NORTH", nil)
	req.SetBasicAuth(adminauth.DefaultUsername, "brand-new-password")
	rec2 := httptest.NewRecorder()
	s.router.ServeHTTP(rec2, req)
	s.Equal(http.StatusOK, rec2.Code)
}

func (s *APITestSuite) TestHighTierRewardAtCompletion() {
	rec := s.do(http.MethodPut, "/api/v1/admin/areas/NORTH/prize",
		map[string]int{"max_high_tier_winners": 1}, true)
	s.Require().Equal(http.StatusOK, rec.Code)

	for i := 0; i < 2; i++ {
		email := fmt.Sprintf("player%d@example.com", i)
		s.registerPlayer(email, "NORTH")

		// Walk to the end: 6 -> 6, 6 -> 12, 6 -> 18 uses the three
		// initial rolls; grant two more for 24 and 30
		grantRec := s.do(http.MethodPost, "/api/v1/admin/grants", map[string]any{
			"area":   "NORTH",
			"amount": 2,
			"emails": []string{email},
		}, true)
		s.Require().Equal(http.StatusOK, grantRec.Code)

		s.app.MockRandom.QueueDie(6, 6, 6, 6, 6)
		var roll response.Roll
		for j := 0; j < 5; j++ {
			rollRec := s.do(http.MethodPost, "/api/v1/players/roll",
				map[string]string{"email": email, "area": "NORTH"}, false)
			s.Require().Equal(http.StatusOK, rollRec.Code)
			s.decode(rollRec, &roll)
		}

		s.Require().NotNil(roll.Reward)
		if i == 0 {
			s.Equal(25, *roll.Reward)
		} else {
			s.Equal(10, *roll.Reward)
		}
	}
}
