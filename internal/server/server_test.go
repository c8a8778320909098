package server

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kycflow/pkg/types"

	"github.com/gorilla/securecookie"
	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmissions struct {
	issued    []types.IssueRequest
	actors    []types.Actor
	processed []string
	statuses  []string

	issueResp   *types.PresignedURLsResponse
	processResp *types.ProcessSubmissionResponse
	statusResp  *types.SubmissionStatusResponse
	matchResp   *types.FaceMatchResult
	err         error
}

func (f *fakeSubmissions) IssueUploadCredentials(ctx context.Context, actor types.Actor, req types.IssueRequest) (*types.PresignedURLsResponse, error) {
	f.issued = append(f.issued, req)
	f.actors = append(f.actors, actor)
	return f.issueResp, f.err
}

func (f *fakeSubmissions) ProcessSubmission(ctx context.Context, submissionID string) (*types.ProcessSubmissionResponse, error) {
	f.processed = append(f.processed, submissionID)
	return f.processResp, f.err
}

func (f *fakeSubmissions) GetStatus(ctx context.Context, submissionType types.SubmissionType, correlator string) (*types.SubmissionStatusResponse, error) {
	f.statuses = append(f.statuses, correlator)
	return f.statusResp, f.err
}

func (f *fakeSubmissions) CompareFaces(ctx context.Context, image1URL, image2URL, submissionID string) (*types.FaceMatchResult, error) {
	return f.matchResp, f.err
}

func testConfig() *types.Config {
	return &types.Config{
		ServerPort:  8080,
		CookieName:  "session_id",
		ErrorEntity: "KYCFLOW_BE",
	}
}

func newTestService(t *testing.T, config *types.Config, subs Submissions) *Service {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc, err := New(config, logger, subs, nil, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "# metrics\n")
	}))
	require.NoError(t, err)
	return svc
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Errors  types.APIErrors `json:"errors"`
}

func do(t *testing.T, svc *Service, method, target, body string, mutate ...func(*http.Request)) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, fn := range mutate {
		fn(req)
	}

	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestIssueUploadURLs(t *testing.T) {
	subs := &fakeSubmissions{issueResp: &types.PresignedURLsResponse{
		SubmissionID: "6f1c",
		Documents: map[types.DocumentRole]types.UploadCredential{
			types.DocumentRoleSelfie: {DocumentURL: "https://s3/put", DocumentReference: "ref", ExpiryInSeconds: "600"},
		},
	}}
	svc := newTestService(t, testConfig(), subs)

	rec, env := do(t, svc, http.MethodPost, "/v1/submissions/urls",
		`{"submissionType":"ON_DEMAND","nfcIdentifier":"abc123","nfcImage":"QUJD"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{
		"submissionId": "6f1c",
		"documents": {"SELFIE": {"documentUrl": "https://s3/put", "documentReference": "ref", "expiryInSeconds": "600"}}
	}`, string(env.Data))

	require.Len(t, subs.issued, 1)
	assert.Equal(t, types.IssueRequest{Type: types.SubmissionTypeOnDemand, Correlator: "abc123", NFCPayload: "QUJD"}, subs.issued[0])
	assert.NotEmpty(t, subs.actors[0].SessionID)
	assert.NotEmpty(t, rec.Header().Get(headerRequestID))
}

func TestIssueUploadURLs_MalformedBody(t *testing.T) {
	subs := &fakeSubmissions{}
	svc := newTestService(t, testConfig(), subs)

	rec, env := do(t, svc, http.MethodPost, "/v1/submissions/urls", `{"submissionType":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, types.APIError{
		Entity: "KYCFLOW_BE",
		Code:   "1003",
		Cause:  "INVALID_REQUEST_BODY",
		Detail: env.Errors[0].Detail,
	}, env.Errors[0])
	assert.Empty(t, subs.issued)
}

func TestProcessSubmission(t *testing.T) {
	subs := &fakeSubmissions{processResp: &types.ProcessSubmissionResponse{SubmissionStatus: "APPROVED"}}
	svc := newTestService(t, testConfig(), subs)

	rec, env := do(t, svc, http.MethodPut, "/v1/submissions/urls", `{"submissionId":"6f1c"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"submissionStatus":"APPROVED"}`, string(env.Data))
	assert.Equal(t, []string{"6f1c"}, subs.processed)
}

func TestProcessSubmission_MissingID(t *testing.T) {
	subs := &fakeSubmissions{}
	svc := newTestService(t, testConfig(), subs)

	rec, env := do(t, svc, http.MethodPut, "/v1/submissions/urls", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, hasCause(env.Errors, types.CauseInvalidRequestBody))
	assert.Empty(t, subs.processed)
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		code, cause string
		want        int
	}{
		{types.CodeNotFound, types.CauseApprovedSubmissionNotFound, http.StatusUnprocessableEntity},
		{types.CodeConflict, types.CauseSubmissionAlreadyProcessed, http.StatusConflict},
		{types.CodeComparisonFailed, types.CauseFaceMatchFailed, http.StatusBadGateway},
		{types.CodePersistenceError, types.CausePersistenceError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.cause, func(t *testing.T) {
			subs := &fakeSubmissions{err: types.APIErrors{{Entity: "KYCFLOW_BE", Code: tt.code, Cause: tt.cause}}}
			svc := newTestService(t, testConfig(), subs)

			rec, env := do(t, svc, http.MethodPut, "/v1/submissions/urls", `{"submissionId":"6f1c"}`)

			assert.Equal(t, tt.want, rec.Code)
			assert.False(t, env.Success)
			assert.True(t, hasCause(env.Errors, tt.cause))
		})
	}
}

func TestUnexpectedErrorIsSystemError(t *testing.T) {
	subs := &fakeSubmissions{err: assert.AnError}
	svc := newTestService(t, testConfig(), subs)

	rec, env := do(t, svc, http.MethodPut, "/v1/submissions/urls", `{"submissionId":"6f1c"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, types.CauseSystemError, env.Errors[0].Cause)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestSubmissionStatus(t *testing.T) {
	subs := &fakeSubmissions{statusResp: &types.SubmissionStatusResponse{SubmissionStatus: "KYC"}}
	svc := newTestService(t, testConfig(), subs)

	rec, env := do(t, svc, http.MethodGet, "/v1/submissions/status?submissionType=KYC&nfcIdentifier=abc123", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"submissionStatus":"KYC"}`, string(env.Data))
	assert.Equal(t, []string{"abc123"}, subs.statuses)
}

func TestSubmissionStatus_OnlyKYC(t *testing.T) {
	subs := &fakeSubmissions{}
	svc := newTestService(t, testConfig(), subs)

	for _, query := range []string{"submissionType=ON_DEMAND&nfcIdentifier=x", "nfcIdentifier=x"} {
		rec, env := do(t, svc, http.MethodGet, "/v1/submissions/status?"+query, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
		assert.True(t, hasCause(env.Errors, types.CauseInvalidSubmissionType), query)
	}
	assert.Empty(t, subs.statuses)
}

func TestFaceMatch(t *testing.T) {
	subs := &fakeSubmissions{matchResp: &types.FaceMatchResult{SubmissionID: "s-1", SimilarityScore: 0.93, IsMatch: true, Threshold: 0.8}}
	svc := newTestService(t, testConfig(), subs)

	rec, env := do(t, svc, http.MethodPost, "/v1/submissions/face-match",
		`{"image1Url":"https://a","image2Url":"https://b","submissionId":"s-1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"submission_id":"s-1","similarity_score":0.93,"is_match":true,"threshold":0.8}`, string(env.Data))

	rec, env = do(t, svc, http.MethodPost, "/v1/submissions/face-match", `{"image1Url":"https://a"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, hasCause(env.Errors, types.CauseInvalidRequestBody))
}

func TestSessionCookieProvidesActor(t *testing.T) {
	hashKey := securecookie.GenerateRandomKey(32)
	blockKey := securecookie.GenerateRandomKey(16)

	config := testConfig()
	config.CookieHashKey = base64.StdEncoding.EncodeToString(hashKey)
	config.CookieBlockKey = base64.StdEncoding.EncodeToString(blockKey)

	subs := &fakeSubmissions{issueResp: &types.PresignedURLsResponse{}}
	svc := newTestService(t, config, subs)

	encoded, err := securecookie.New(hashKey, blockKey).Encode("session_id", sessionCookie{SessionID: "sess-1", UserID: "user-9"})
	require.NoError(t, err)

	rec, _ := do(t, svc, http.MethodPost, "/v1/submissions/urls", `{"submissionType":"KYC","nfcIdentifier":"abc"}`,
		func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "session_id", Value: encoded}) })

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, subs.actors, 1)
	assert.Equal(t, types.Actor{SessionID: "sess-1", ActorID: "user-9"}, subs.actors[0])
}

func TestTamperedCookieFallsBackToAnonymous(t *testing.T) {
	config := testConfig()
	config.CookieHashKey = base64.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32))

	subs := &fakeSubmissions{issueResp: &types.PresignedURLsResponse{}}
	svc := newTestService(t, config, subs)

	rec, _ := do(t, svc, http.MethodPost, "/v1/submissions/urls", `{"submissionType":"KYC","nfcIdentifier":"abc"}`,
		func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "session_id", Value: "forged"}) })

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, subs.actors, 1)
	assert.Empty(t, subs.actors[0].ActorID)
	assert.Len(t, subs.actors[0].SessionID, 32)
}

func TestInvalidCookieKey(t *testing.T) {
	config := testConfig()
	config.CookieHashKey = "%%%"

	_, err := New(config, logrus.New(), &fakeSubmissions{}, nil, nil)
	assert.Error(t, err)
}

func TestRequestIDIsPropagated(t *testing.T) {
	svc := newTestService(t, testConfig(), &fakeSubmissions{})

	rec, _ := do(t, svc, http.MethodGet, "/healthz", "", func(r *http.Request) { r.Header.Set(headerRequestID, "req-42") })

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-42", rec.Header().Get(headerRequestID))
}

func TestHealthAndMetrics(t *testing.T) {
	svc := newTestService(t, testConfig(), &fakeSubmissions{})

	rec, env := do(t, svc, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, string(env.Data))

	rec, _ = do(t, svc, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "# metrics")
}

func TestStripTrailingSlash(t *testing.T) {
	svc := newTestService(t, testConfig(), &fakeSubmissions{})

	rec, _ := do(t, svc, http.MethodPut, "/v1/submissions/urls/?x=1", `{}`)

	assert.Equal(t, http.StatusPermanentRedirect, rec.Code)
	assert.Equal(t, "/v1/submissions/urls?x=1", rec.Header().Get("Location"))
}

func TestMethodNotAllowed(t *testing.T) {
	svc := newTestService(t, testConfig(), &fakeSubmissions{})

	rec, _ := do(t, svc, http.MethodDelete, "/v1/submissions/urls", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

type signer struct {
	key jwk.Key
	set jwk.Set
}

func newSigner(t *testing.T, kid string) signer {
	t.Helper()

	raw, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	key, err := jwk.Import(raw)
	require.NoError(t, err)
	require.NoError(t, key.Set(jwk.KeyIDKey, kid))
	require.NoError(t, key.Set(jwk.AlgorithmKey, jwa.RS256()))

	pub, err := jwk.PublicKeyOf(key)
	require.NoError(t, err)

	set := jwk.NewSet()
	require.NoError(t, set.AddKey(pub))

	return signer{key: key, set: set}
}

func (s signer) sign(t *testing.T, build func(*jwt.Builder) *jwt.Builder) string {
	t.Helper()

	token, err := build(jwt.NewBuilder().IssuedAt(time.Now())).Build()
	require.NoError(t, err)

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.RS256(), s.key))
	require.NoError(t, err)
	return string(signed)
}

func newJWKSService(t *testing.T, published jwk.Set, subs Submissions) *Service {
	t.Helper()

	jwks := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(published))
	}))
	t.Cleanup(jwks.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cache, err := jwk.NewCache(ctx, httprc.NewClient())
	require.NoError(t, err)
	require.NoError(t, cache.Register(ctx, jwks.URL))

	config := testConfig()
	config.AuthJWKSURL = jwks.URL

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc, err := New(config, logger, subs, cache, nil)
	require.NoError(t, err)
	return svc
}

func TestBearerTokenProvidesActor(t *testing.T) {
	trusted := newSigner(t, "primary")
	untrusted := newSigner(t, "primary")

	tests := []struct {
		name      string
		token     string
		wantActor string
	}{
		{
			name: "valid token",
			token: trusted.sign(t, func(b *jwt.Builder) *jwt.Builder {
				return b.Subject("user-7").Expiration(time.Now().Add(time.Hour))
			}),
			wantActor: "user-7",
		},
		{
			name: "expired token",
			token: trusted.sign(t, func(b *jwt.Builder) *jwt.Builder {
				return b.Subject("user-7").Expiration(time.Now().Add(-time.Hour))
			}),
		},
		{
			name: "signed with another key",
			token: untrusted.sign(t, func(b *jwt.Builder) *jwt.Builder {
				return b.Subject("user-7").Expiration(time.Now().Add(time.Hour))
			}),
		},
		{
			name: "no subject",
			token: trusted.sign(t, func(b *jwt.Builder) *jwt.Builder {
				return b.Expiration(time.Now().Add(time.Hour))
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs := &fakeSubmissions{issueResp: &types.PresignedURLsResponse{}}
			svc := newJWKSService(t, trusted.set, subs)

			rec, _ := do(t, svc, http.MethodPost, "/v1/submissions/urls", `{"submissionType":"KYC","nfcIdentifier":"abc"}`,
				func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tt.token) })

			require.Equal(t, http.StatusOK, rec.Code)
			require.Len(t, subs.actors, 1)
			assert.Equal(t, tt.wantActor, subs.actors[0].ActorID)
			assert.NotEmpty(t, subs.actors[0].SessionID)
		})
	}
}

func TestBearerTokenOverridesCookieActor(t *testing.T) {
	trusted := newSigner(t, "primary")

	subs := &fakeSubmissions{issueResp: &types.PresignedURLsResponse{}}
	svc := newJWKSService(t, trusted.set, subs)

	hashKey := securecookie.GenerateRandomKey(32)
	svc.cookie = securecookie.New(hashKey, nil)
	encoded, err := svc.cookie.Encode("session_id", sessionCookie{SessionID: "sess-1", UserID: "cookie-user"})
	require.NoError(t, err)

	token := trusted.sign(t, func(b *jwt.Builder) *jwt.Builder {
		return b.Subject("token-user").Expiration(time.Now().Add(time.Hour))
	})

	rec, _ := do(t, svc, http.MethodPost, "/v1/submissions/urls", `{"submissionType":"KYC","nfcIdentifier":"abc"}`,
		func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "session_id", Value: encoded})
			r.Header.Set("Authorization", "Bearer "+token)
		})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, subs.actors, 1)
	assert.Equal(t, types.Actor{SessionID: "sess-1", ActorID: "token-user"}, subs.actors[0])
}

func hasCause(errs types.APIErrors, cause string) bool {
	for _, err := range errs {
		if err.Cause == cause {
			return true
		}
	}
	return false
}
