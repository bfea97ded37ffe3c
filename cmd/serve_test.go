package cmd

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dbuik1/talkingscores/model"
)

const testScore = `<?xml version="1.0" encoding="UTF-8"?>
<score-partwise>
  <work><work-title>Repetition Study</work-title></work>
  <part-list>
    <score-part id="P1"><part-name>Piano</part-name></score-part>
  </part-list>
  <part id="P1">
    <measure number="1">
      <attributes><divisions>1</divisions></attributes>
      <note><pitch><step>C</step><octave>4</octave></pitch><duration>1</duration></note>
      <note><pitch><step>E</step><octave>4</octave></pitch><duration>1</duration></note>
    </measure>
    <measure number="2">
      <note><pitch><step>C</step><octave>4</octave></pitch><duration>1</duration></note>
      <note><pitch><step>E</step><octave>4</octave></pitch><duration>1</duration></note>
    </measure>
  </part>
</score-partwise>`

func TestHandleAnalyseDescribesAnUploadedScore(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/analyse", strings.NewReader(testScore))
	w := httptest.NewRecorder()
	handleAnalyse(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var res model.AnalysisResponse
	if err := json.Unmarshal(respBody, &res); err != nil {
		t.Fatal(err)
	}
	assert.NotEmpty(res.ID)
	assert.Equal("Repetition Study", res.Title)
	assert.Contains(res.GeneralSummary, "There are 2 bars. ")
	assert.Len(res.Parts, 1)
	assert.Equal("Piano", res.Parts[0].Name)
	assert.Contains(res.Parts[0].Summary, "used all of the way through")
}

func TestHandleAnalyseRejectsEmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/analyse", strings.NewReader(""))
	w := httptest.NewRecorder()
	handleAnalyse(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(http.StatusBadRequest, resp.StatusCode)

	var res model.ErrorResponse
	if err := json.Unmarshal(respBody, &res); err != nil {
		t.Fatal(err)
	}
	assert.NotEmpty(res.Error)
}

func TestHandleAnalyseRejectsUnreadableScores(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/analyse", strings.NewReader("MThd garbage"))
	w := httptest.NewRecorder()
	handleAnalyse(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Result().StatusCode)
}
