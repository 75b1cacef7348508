package uzjobs

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	return args.Get(0).(*http.Response), args.Error(1)
}

func searchPageMock() (*http.Response, error) {
	file, err := os.ReadFile("testdata/search.html")

	return &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewBuffer(file)),
	}, err
}

func Test_UzJobsClient_Search_ParsesListings(t *testing.T) {

	assert := assert.New(t)

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.Query().Get("q") == "python+backend"
	})).Return(searchPageMock())

	client := NewClient()
	client.SetHTTPClient(mockClient)

	listings, err := client.Search(context.Background(), []string{"python", "backend"})
	assert.NoError(err)

	// the third item has no parsable id and must be skipped, not fail the page
	assert.Len(listings, 2)

	assert.Equal("12345", listings[0].ID)
	assert.Equal("Python Backend Developer", listings[0].Title)
	assert.Equal("Digital Plus", listings[0].Company)
	assert.Equal("Ташкент", listings[0].Location)
	assert.Equal("https://uzjobs.com/ru/vacancy/view/12345", listings[0].Url)

	assert.Equal("12346", listings[1].ID)
	assert.Equal("WebStudio", listings[1].Company)
	assert.Equal("Самарканд", listings[1].Location)
}

func Test_UzJobsClient_Search_NonOKStatusIsError(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(&http.Response{
		StatusCode: 500,
		Body:       io.NopCloser(bytes.NewBufferString("")),
	}, nil)

	client := NewClient()
	client.SetHTTPClient(mockClient)

	_, err := client.Search(context.Background(), []string{"python"})
	assert.Error(t, err)
}
