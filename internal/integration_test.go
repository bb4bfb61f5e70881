package internal

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"complaint-intake-backend/config"
	"complaint-intake-backend/internal/api"
	"complaint-intake-backend/internal/dialog"
	"complaint-intake-backend/internal/model"
	"complaint-intake-backend/internal/state"
	"complaint-intake-backend/internal/store"
)

// TestComplaintIntakeLifecycle walks a full conversation through the webhook
// surface: ambiguous machine mention, disambiguation, description, category,
// and verifies the complaint row at the end.
func TestComplaintIntakeLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testDB, err := gorm.Open(sqlite.Open("file:lifecycle?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()

	require.NoError(t, testDB.AutoMigrate(
		&model.Resource{},
		&model.LabIncharge{},
		&model.Complaint{},
		&model.ConversationState{},
		&model.PushSubscription{},
	))

	seed := []any{
		&model.Resource{ID: 2, Name: "Lathe A", Location: "Workshop B"},
		&model.Resource{ID: 3, Name: "Lathe B", Location: "Workshop B"},
		&model.LabIncharge{LocationID: 10, Location: "Workshop B", MemberID: 7, Status: "active"},
	}
	for _, row := range seed {
		require.NoError(t, testDB.Create(row).Error)
	}

	s := store.NewGormStore(testDB)
	engine := dialog.NewEngine(s, state.NewGormStore(testDB), nil, nil, nil, 0)
	router := api.NewRouter(s, engine, &config.ServerConfig{
		RateLimitPerSec: 1000,
		RateLimitBurst:  1000,
		CacheTTLSeconds: 1,
	})

	send := func(body string) string {
		form := url.Values{"From": {"+15559990000"}, "Body": {body}}
		req := httptest.NewRequest(http.MethodPost, "/webhook/twilio", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		return w.Body.String()
	}

	// Step 1: ambiguous mention lists both lathes.
	reply := send("the lathe is making a horrible noise")
	assert.Contains(t, reply, "Lathe A")
	assert.Contains(t, reply, "Lathe B")

	// Step 2: a name that matches neither re-prompts.
	reply = send("the big one")
	assert.Contains(t, reply, "Lathe A")

	// Step 3: exact name confirms the machine.
	reply = send("Lathe A")
	assert.Contains(t, reply, "Lathe A")
	assert.Contains(t, reply, "Workshop B")

	// Step 4: free-text description is accepted.
	reply = send("The chuck is loose and the whole head vibrates")
	assert.Contains(t, strings.ToLower(reply), "issue type")

	// Step 5: gibberish category is rejected, state survives.
	reply = send("dunno")
	assert.Contains(t, reply, "Invalid type")

	// Step 6: a classifiable category files the complaint.
	reply = send("probably mechanical")
	assert.Contains(t, reply, "registered")

	var complaints []model.Complaint
	require.NoError(t, testDB.Find(&complaints).Error)
	require.Len(t, complaints, 1)
	c := complaints[0]
	assert.Equal(t, int64(2), c.MachineID)
	assert.Equal(t, model.IssueHardware, c.Type)
	assert.Equal(t, "Open", c.Status)
	assert.Equal(t, "The chuck is loose and the whole head vibrates", c.Description)
	require.NotNil(t, c.MemberID)
	assert.Equal(t, int64(7), *c.MemberID)

	// The dialogue is over; the next message starts fresh.
	var count int64
	require.NoError(t, testDB.Model(&model.ConversationState{}).Count(&count).Error)
	assert.Zero(t, count)

	reply = send("lathe b")
	assert.Contains(t, reply, "Lathe B")
	assert.Contains(t, strings.ToLower(reply), "describe")
}
