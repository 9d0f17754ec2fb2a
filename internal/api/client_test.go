package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"zyapi/internal/api"
	"zyapi/internal/api/fake"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

func jsonResponse(code int, body string) *http.Response {
	return &http.Response{
		StatusCode: code,
		Status:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

var _ = Describe("Client", func() {
	var (
		client   *api.Client
		fakeDoer *fake.HTTPDoer
		ctx      context.Context
		fakeErr  error
	)

	BeforeEach(func() {
		var err error
		fakeDoer = new(fake.HTTPDoer)
		ctx = context.Background()
		fakeErr = errors.New("fake error")

		client, err = api.NewClient(zap.NewNop().Sugar(), fakeDoer, "https://api.example.com/v1", api.WithToken("secret"))
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("NewClient", func() {
		It("should reject relative base urls", func() {
			_, err := api.NewClient(zap.NewNop().Sugar(), fakeDoer, "v1/api")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Do", func() {
		var (
			route  string
			method string
			init   api.Init
			value  json.RawMessage
			err    error
		)

		BeforeEach(func() {
			route = "/users/[id]/posts"
			method = http.MethodGet
			init = api.Init{
				Params: map[string]string{"id": "42"},
				Query:  map[string]any{"limit": 10, "cursor": nil},
			}
			fakeDoer.DoReturns(jsonResponse(http.StatusOK,
				`{"success":true,"statusCode":200,"statusMessage":"OK","value":42}`), nil)
		})

		JustBeforeEach(func() {
			value, err = client.Do(ctx, route, method, init)
		})

		When("the api answers with a success envelope", func() {
			It("should return the value", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(value).To(MatchJSON(`42`))
			})

			It("should build the request", func() {
				Expect(fakeDoer.DoCallCount()).To(Equal(1))
				req := fakeDoer.DoArgsForCall(0)
				Expect(req.Method).To(Equal(http.MethodGet))
				Expect(req.URL.String()).To(Equal("https://api.example.com/v1/users/42/posts?limit=10"))
				Expect(req.Header.Get("Accept")).To(Equal("application/json"))
				Expect(req.Header.Get("Authorization")).To(Equal("Bearer secret"))
				Expect(req.Header.Get("X-Request-ID")).NotTo(BeEmpty())
				Expect(req.Body).To(BeNil())
			})
		})

		When("a body is given", func() {
			BeforeEach(func() {
				route = "users"
				method = "post"
				init = api.Init{Body: map[string]string{"name": "zy"}}
			})

			It("should send it as json", func() {
				Expect(err).NotTo(HaveOccurred())
				req := fakeDoer.DoArgsForCall(0)
				Expect(req.Method).To(Equal(http.MethodPost))
				Expect(req.URL.String()).To(Equal("https://api.example.com/v1/users"))
				Expect(req.Header.Get("Content-Type")).To(Equal("application/json"))

				sent, readErr := io.ReadAll(req.Body)
				Expect(readErr).NotTo(HaveOccurred())
				Expect(sent).To(MatchJSON(`{"name":"zy"}`))
			})
		})

		When("a route param is missing", func() {
			BeforeEach(func() {
				init.Params = nil
			})

			It("should fail before sending anything", func() {
				Expect(err).To(MatchError(api.ErrMissingParam))
				Expect(err.Error()).To(ContainSubstring(`"id"`))
				Expect(fakeDoer.DoCallCount()).To(Equal(0))
			})
		})

		When("the api answers with a failure envelope", func() {
			BeforeEach(func() {
				fakeDoer.DoReturns(jsonResponse(http.StatusOK,
					`{"success":false,"statusCode":400,"statusMessage":"Bad","error":"bad input"}`), nil)
			})

			It("should return the api error", func() {
				Expect(err).To(MatchError(api.ErrAPIResponse))
				Expect(err.Error()).To(ContainSubstring("bad input"))
				Expect(value).To(BeNil())
			})
		})

		When("the failure envelope comes with an error status", func() {
			BeforeEach(func() {
				fakeDoer.DoReturns(jsonResponse(http.StatusNotFound,
					`{"success":false,"statusCode":404,"statusMessage":"Not Found","error":"no such user"}`), nil)
			})

			It("should still surface the api error", func() {
				var respErr *api.ResponseError
				Expect(errors.As(err, &respErr)).To(BeTrue())
				Expect(respErr.StatusCode).To(Equal(404))
				Expect(respErr.Reason).To(Equal("no such user"))
			})
		})

		When("the body is not an envelope", func() {
			BeforeEach(func() {
				fakeDoer.DoReturns(jsonResponse(http.StatusOK, `{"ok":true}`), nil)
			})

			It("should fail validation", func() {
				Expect(err).To(MatchError(api.ErrMalformedResponse))
			})
		})

		When("an error status comes without an envelope", func() {
			BeforeEach(func() {
				fakeDoer.DoReturns(jsonResponse(http.StatusBadGateway, `upstream down`), nil)
			})

			It("should return an http error", func() {
				var httpErr *api.HTTPError
				Expect(errors.As(err, &httpErr)).To(BeTrue())
				Expect(httpErr.StatusCode).To(Equal(http.StatusBadGateway))
				Expect(err).To(MatchError(api.ErrMalformedResponse))
			})
		})

		When("the transport fails", func() {
			BeforeEach(func() {
				fakeDoer.DoReturns(nil, fakeErr)
			})

			It("should wrap the transport error", func() {
				Expect(err).To(MatchError(fakeErr))
			})
		})
	})

	Describe("Call", func() {
		type post struct {
			ID    int    `json:"id"`
			Title string `json:"title"`
		}

		var (
			endpoint api.Endpoint[post, []post]
			posts    []post
			err      error
		)

		BeforeEach(func() {
			endpoint = api.Endpoint[post, []post]{Route: "/users/[id]/posts", Method: http.MethodGet}
			fakeDoer.DoReturns(jsonResponse(http.StatusOK,
				`{"success":true,"statusCode":200,"statusMessage":"OK","value":[{"id":1,"title":"hi"}]}`), nil)
		})

		JustBeforeEach(func() {
			posts, err = api.Call(ctx, client, endpoint, api.Request[post]{
				Params: map[string]string{"id": "1"},
			})
		})

		It("should decode the typed payload", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(posts).To(Equal([]post{{ID: 1, Title: "hi"}}))
			Expect(fakeDoer.DoArgsForCall(0).Body).To(BeNil())
		})

		When("the success envelope has no value", func() {
			BeforeEach(func() {
				fakeDoer.DoReturns(jsonResponse(http.StatusOK,
					`{"success":true,"statusCode":200,"statusMessage":"OK"}`), nil)
			})

			It("should return the zero payload", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(posts).To(BeNil())
			})
		})

		When("the value has the wrong shape", func() {
			BeforeEach(func() {
				fakeDoer.DoReturns(jsonResponse(http.StatusOK,
					`{"success":true,"statusCode":200,"statusMessage":"OK","value":"oops"}`), nil)
			})

			It("should fail", func() {
				Expect(err).To(MatchError(api.ErrMalformedResponse))
				Expect(posts).To(BeNil())
			})
		})
	})
})
