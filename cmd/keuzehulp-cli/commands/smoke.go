package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	smokeBaseURL  string
	smokePassword string
)

var smokeCmd = &cobra.Command{
	Use:   "smoke",
	Short: "Run a request sequence against a running keuzehulp server",
	RunE:  runSmoke,
}

func init() {
	smokeCmd.Flags().StringVar(&smokeBaseURL, "url", "http://localhost:8080", "server base URL")
	smokeCmd.Flags().StringVar(&smokePassword, "password", "", "shared password (defaults to KEUZEHULP_PASSWORD)")
	rootCmd.AddCommand(smokeCmd)
}

type smokeClient struct {
	http  *http.Client
	base  string
	token string
}

// Pretty print JSON helper
func prettyPrint(body []byte) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func (c *smokeClient) send(method, path string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, nil, err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.base+path, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func (c *smokeClient) step(title, method, path string, body interface{}) ([]byte, error) {
	color.Yellow("\n%s %s %s", title, method, path)
	resp, respBody, err := c.send(method, path, body)
	if err != nil {
		color.Red("Failed: %v", err)
		return nil, err
	}
	if resp.StatusCode >= 400 {
		color.Red("Status: %s", resp.Status)
	} else {
		color.Green("Status: %s", resp.Status)
	}
	prettyPrint(respBody)
	return respBody, nil
}

func runSmoke(cmd *cobra.Command, args []string) error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	client := &smokeClient{
		http: &http.Client{Jar: jar, Timeout: 2 * time.Minute},
		base: smokeBaseURL,
	}

	password := smokePassword
	if password == "" {
		password = cfg.Keuzehulp.Password
	}

	color.Cyan("🚀 Keuzehulp smoke run against %s", smokeBaseURL)

	if _, err := client.step("[1]", http.MethodGet, "/healthz", nil); err != nil {
		return err
	}

	if password != "" {
		body, err := client.step("[2]", http.MethodPost, "/login", map[string]string{"password": password})
		if err != nil {
			return err
		}
		var login struct {
			Data struct {
				Token string `json:"token"`
			} `json:"data"`
		}
		if err := json.Unmarshal(body, &login); err == nil {
			client.token = login.Data.Token
		}
	}

	steps := []struct {
		path string
		body interface{}
	}{
		{"/ask", map[string]interface{}{"questionIndex": 0, "answers": []string{}}},
		{"/chat", map[string]string{"message": ""}},
		{"/chat", map[string]string{"message": "Ik zoek een 55 inch OLED voor films, budget 1500 euro"}},
		{"/chat", map[string]string{"message": "Welke tv raad je aan?"}},
	}
	for i, s := range steps {
		if _, err := client.step(fmt.Sprintf("[%d]", i+3), http.MethodPost, s.path, s.body); err != nil {
			return err
		}
	}
	return nil
}
