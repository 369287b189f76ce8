package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"gorm.io/gorm"

	"github.com/personal-finance/backend/internal/integration/adapters"
)

const (
	defaultPassword     = "SecurePass123!"
	notificationTimeout = 2 * time.Second
)

func registerSetupSteps(ctx *godog.ScenarioContext, t *TestContext, s *suite) {
	ctx.Given(`^the API server is running$`, t.theAPIServerIsRunning)
	ctx.Given(`^the current time is "([^"]*)"$`, func(value string) error {
		now, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return fmt.Errorf("invalid time %q: %w", value, err)
		}
		s.clock.SetCurrentTime(now)
		return nil
	})
	ctx.Given(`^I am registered and logged in as "([^"]*)"$`, t.iAmRegisteredAndLoggedInAs)
	ctx.Given(`^the header is empty$`, t.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, t.theHeaderContainsTheKeyWith)
	ctx.Step(`^I save the response field "([^"]*)" as "([^"]*)"$`, t.iSaveTheResponseFieldAs)
}

func registerRequestSteps(ctx *godog.ScenarioContext, t *TestContext) {
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, t.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, t.iSendARequestToWithBody)
}

func registerResponseSteps(ctx *godog.ScenarioContext, t *TestContext) {
	ctx.Then(`^the response status should be (\d+)$`, t.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, t.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, t.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, t.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, t.theResponseFieldShouldExist)
}

func registerDatabaseSteps(ctx *godog.ScenarioContext, t *TestContext, s *suite) {
	ctx.When(`^the recurring scheduler runs$`, func(ctx context.Context) error {
		_, err := s.injector.Scheduler.RunOnce(ctx)
		return err
	})
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, func(quantity int, table string) error {
		return countRows(s, quantity, table, nil)
	})
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, func(quantity int, table string, content *godog.DocString) error {
		var criteria map[string]any
		if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
			return err
		}
		return countRows(s, quantity, table, criteria)
	})
}

func registerNotificationSteps(ctx *godog.ScenarioContext, t *TestContext, s *suite) {
	ctx.Given(`^I am subscribed to my real-time notifications$`, func(ctx context.Context) error {
		if t.currentUserID == "" {
			return errors.New("no user is logged in")
		}
		channel := adapters.UserChannel(s.injector.Config.Redis.Channel, t.currentUserID)
		t.subscription = s.redis.Subscribe(ctx, channel)
		if _, err := t.subscription.Receive(ctx); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", channel, err)
		}
		return nil
	})
	ctx.Then(`^I should receive a real-time notification containing "([^"]*)"$`, func(expected string) error {
		if t.subscription == nil {
			return errors.New("not subscribed to notifications")
		}
		select {
		case msg := <-t.subscription.Channel():
			if !strings.Contains(msg.Payload, expected) {
				return fmt.Errorf("notification %q does not contain %q", msg.Payload, expected)
			}
			return nil
		case <-time.After(notificationTimeout):
			return fmt.Errorf("no notification received within %s", notificationTimeout)
		}
	})
}

func (t *TestContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.uri + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

func (t *TestContext) iAmRegisteredAndLoggedInAs(email string) error {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"name":     "Test User",
		"password": defaultPassword,
	})
	if err != nil {
		return err
	}
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/register", payload); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("registration failed with status %d: %v", t.response.status, t.response.body)
	}

	token, ok := getFieldValue(t.response.body, "access_token").(string)
	if !ok || token == "" {
		return fmt.Errorf("registration response has no access token: %v", t.response.body)
	}
	userID, ok := getFieldValue(t.response.body, "user.id").(string)
	if !ok || userID == "" {
		return fmt.Errorf("registration response has no user id: %v", t.response.body)
	}

	t.accessToken = token
	t.currentUserID = userID
	t.saved["user_id"] = userID
	return nil
}

func (t *TestContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *TestContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *TestContext) iSaveTheResponseFieldAs(field, name string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	t.saved[name] = fmt.Sprintf("%v", value)
	return nil
}

func (t *TestContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *TestContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

// replacePlaceholders substitutes {{name}} with values saved earlier in the scenario.
func (t *TestContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	for name, value := range t.saved {
		content = strings.ReplaceAll(content, "{{"+name+"}}", value)
	}
	return content
}

func (t *TestContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.uri+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}
	var decoded any
	if err := json.Unmarshal(bodyBytes, &decoded); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = decoded
	}
	return nil
}

func (t *TestContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *TestContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	switch t.response.body.(type) {
	case map[string]any, []any:
		return nil
	default:
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
}

func (t *TestContext) theResponseShouldContain(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *TestContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}

	expectedValue = t.replacePlaceholders(expectedValue)
	if actual := fmt.Sprintf("%v", value); actual != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actual)
	}
	return nil
}

func (t *TestContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if getFieldValue(t.response.body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	return nil
}

// countRows compares the number of rows in table matching criteria, soft-deleted rows included.
func countRows(s *suite, quantity int, table string, criteria map[string]any) error {
	entity, ok := s.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := s.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	if count := entitySlicePtr.Elem().Len(); count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

// getFieldValue walks a decoded JSON document along a dot separated path.
// Numeric segments index into arrays.
func getFieldValue(object any, dotSeparatedField string) any {
	field := object
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}
	return field
}
