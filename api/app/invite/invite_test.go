package invite

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/triptogether/triptogether/invites"
)

func TestRenderValidationFailureForDeadToken(t *testing.T) {
	assert := assert.New(t)
	res := &InviteRessource{log: zap.NewNop()}
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/dGVzdC10b2tlbg/signup", nil)

	res.renderValidationFailure(rr, req, invites.ErrInviteInvalid)

	assert.Equal(http.StatusNotFound, rr.Code)
	assert.Contains(rr.Body.String(), invalidInviteMessage)
}

func TestRenderValidationFailureForBackendTrouble(t *testing.T) {
	assert := assert.New(t)
	res := &InviteRessource{log: zap.NewNop()}
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/dGVzdC10b2tlbg/signup", nil)

	// a broken datastore must not read as a dead invite
	res.renderValidationFailure(rr, req, errors.New("connection refused"))

	assert.Equal(http.StatusInternalServerError, rr.Code)
	assert.NotContains(rr.Body.String(), invalidInviteMessage)
}
