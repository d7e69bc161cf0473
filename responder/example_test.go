package responder_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/drblury/bloglist/responder"
)

func ExampleResponder_full() {
	errMissing := errors.New("blog not found")
	r := responder.NewResponder(
		responder.WithErrorClassifier(func(err error) (int, bool) {
			if errors.Is(err, errMissing) {
				return http.StatusNotFound, true
			}
			return 0, false
		}),
	)

	titles := make(map[string]struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Title string `json:"title"`
		}
		if !r.ReadRequestBody(w, req, &body) {
			return
		}
		if body.Title == "" {
			r.HandleBadRequestError(w, req, errors.New("title is required"))
			return
		}
		if _, exists := titles[body.Title]; !exists && req.Method == http.MethodPut {
			r.HandleErrors(w, req, errMissing)
			return
		}
		titles[body.Title] = struct{}{}
		r.RespondWithJSON(w, req, http.StatusCreated, map[string]string{"title": body.Title})
	})

	createRec := httptest.NewRecorder()
	handler.ServeHTTP(createRec, httptest.NewRequest(http.MethodPost, "/api/blogs", strings.NewReader(`{"title":"Blessed Be"}`)))
	fmt.Println(createRec.Code)
	fmt.Println(strings.TrimSpace(createRec.Body.String()))

	missingRec := httptest.NewRecorder()
	handler.ServeHTTP(missingRec, httptest.NewRequest(http.MethodPut, "/api/blogs", strings.NewReader(`{"title":"Shooting Stars"}`)))

	var problem responder.ProblemDetails
	_ = json.Unmarshal(missingRec.Body.Bytes(), &problem)
	fmt.Println(problem.Status)
	fmt.Println(problem.Title)

	// Output:
	// 201
	// {"title":"Blessed Be"}
	// 404
	// Not Found
}

func ExampleWithStatusMetadata() {
	r := responder.NewResponder(
		responder.WithStatusMetadata(http.StatusBadRequest, responder.StatusMetadata{
			Title:   "Invalid blog",
			LogMsg:  "blog rejected",
			TypeURI: "https://bloglist.example.com/problems/invalid-blog",
		}),
	)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/blogs", nil)
	r.HandleBadRequestError(rec, req, errors.New("author is required"))

	fmt.Println(rec.Code)
	fmt.Println(strings.Contains(rec.Body.String(), "\"title\":\"Invalid blog\""))

	// Output:
	// 400
	// true
}
