package admin

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Placemate/internal/dto"
	"github.com/lshigami/Placemate/internal/middleware"
	"github.com/lshigami/Placemate/internal/service"
)

type fakeImport struct {
	err   error
	got   []byte
	actor service.Actor
}

func (f *fakeImport) ImportXLSX(actor service.Actor, testID uint, r io.Reader) (*dto.ImportResultDTO, error) {
	f.actor = actor
	f.got, _ = io.ReadAll(r)
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ImportResultDTO{Imported: 2, Remaining: 3}, nil
}

func upload(t *testing.T, field string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, "questions.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	part.Write(content)
	w.Close()
	return &body, w.FormDataContentType()
}

func TestImportQuestions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	interviewer := service.Actor{UserID: 4, Role: "interviewer"}
	tests := []struct {
		name  string
		field string
		err   error
		want  int
	}{
		{"imported", "file", nil, http.StatusOK},
		{"missing file", "upload", nil, http.StatusBadRequest},
		{"not owner", "file", service.ErrForbidden, http.StatusForbidden},
		{"unreadable", "file", service.ErrInvalidInput, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imp := &fakeImport{err: tt.err}
			c := NewAdminTestController(nil, imp, nil)
			r := gin.New()
			r.POST("/tests/:test_id/questions/import", func(ctx *gin.Context) {
				middleware.SetActor(ctx, interviewer)
				ctx.Next()
			}, c.ImportQuestions)

			body, contentType := upload(t, tt.field, []byte("sheet-bytes"))
			req := httptest.NewRequest(http.MethodPost, "/tests/9/questions/import", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
			if tt.field == "file" && (string(imp.got) != "sheet-bytes" || imp.actor != interviewer) {
				t.Errorf("service got %q from %+v", imp.got, imp.actor)
			}
		})
	}
}
