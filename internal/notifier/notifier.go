package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/ewagner/stackline/internal/constants"
	"github.com/ewagner/stackline/internal/reminders"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// Notifier submits reminder requests to the stackline tray companion over
// its local webhook. It implements reminders.Delivery.
type Notifier struct{}

type schedulePayload struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	Hour       int    `json:"hour"`
	Minute     int    `json:"minute"`
	Repeat     string `json:"repeat"`
	DurationMs uint32 `json:"duration_ms"`
}

func New() *Notifier {
	return &Notifier{}
}

// Submit schedules one repeating daily alert with the tray app.
func (n *Notifier) Submit(req reminders.Request) error {
	port, secret, err := trayEndpoint()
	if err != nil {
		return err
	}

	payload := schedulePayload{
		ID:         req.ID,
		Title:      req.Title,
		Body:       req.Body,
		Hour:       req.Hour,
		Minute:     req.Minute,
		Repeat:     "daily",
		DurationMs: constants.NotificationDurationMs,
	}

	return post(port, secret, "/schedule", payload)
}

// CancelAll drops every pending alert previously scheduled by stackline.
func (n *Notifier) CancelAll() error {
	port, secret, err := trayEndpoint()
	if err != nil {
		return err
	}
	return post(port, secret, "/cancel", struct{}{})
}

// Authorized reports whether the user currently allows notifications,
// from the tray app's settings file. Missing settings default to allowed.
func (n *Notifier) Authorized() bool {
	configDir, err := GetTrayAppConfigDir()
	if err != nil {
		return true
	}

	data, err := os.ReadFile(filepath.Join(configDir, "settings.json"))
	if err != nil {
		return true
	}

	var store struct {
		Settings struct {
			NotificationsEnabled *bool `json:"notifications_enabled"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err != nil {
		return true
	}
	if store.Settings.NotificationsEnabled == nil {
		return true
	}
	return *store.Settings.NotificationsEnabled
}

// GetTrayAppConfigDir returns the configuration directory used by the tray
// application.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	// Check for settings.json to see if a custom lockfile dir is set
	settingsPath := filepath.Join(trayConfigDir, "settings.json")
	if _, err := os.Stat(settingsPath); err == nil {
		data, err := os.ReadFile(settingsPath)
		if err == nil {
			var store struct {
				Settings struct {
					LockfileDir *string `json:"lockfile_dir"`
				} `json:"settings"`
			}
			if err := json.Unmarshal(data, &store); err == nil {
				if store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
					return *store.Settings.LockfileDir, nil
				}
			}
		}
	}

	return trayConfigDir, nil
}

func trayEndpoint() (string, string, error) {
	trayAppConfigPath, err := GetTrayAppConfigDir()
	if err != nil {
		return "", "", err
	}
	return findAndValidateTrayProcess(filepath.Join(trayAppConfigPath, constants.NotifierLockfileName))
}

func findAndValidateTrayProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", errors.New("stackline-tray is not running")
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port := parts[0]
	if strings.TrimSpace(port) == "" {
		return "", "", errors.New("port in lockfile is empty")
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", errors.New("invalid process ID in lockfile")
	}
	secret := parts[2]
	if strings.TrimSpace(secret) == "" {
		return "", "", errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", errors.New("stackline-tray process not running")
	}

	if !strings.HasPrefix(process.Executable(), "stackline-tray") {
		return "", "", fmt.Errorf("process with PID %d is not stackline-tray (is %s)", pid, process.Executable())
	}

	return port, secret, nil
}

func post(port, secret, path string, payload interface{}) error {
	url := fmt.Sprintf("http://127.0.0.1:%s%s", port, path)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Stackline-Secret", secret)

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("request to %s failed with status %d: %s", path, res.StatusCode, string(body))
}
