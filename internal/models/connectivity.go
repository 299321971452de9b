package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Статусы отдельной проверки подключения.
const (
	TestPassed = "passed"
	TestFailed = "failed"
)

// Имена проверок в порядке выполнения.
const (
	ConnectionTest       = "connection_test"
	ContainerAccessTest  = "container_access_test"
	ReadPermissionTest   = "read_permission_test"
	WritePermissionTest  = "write_permission_test"
	DeletePermissionTest = "delete_permission_test"
)

// ConnectivityTestNames фиксирует порядок шагов самопроверки.
var ConnectivityTestNames = []string{
	ConnectionTest,
	ContainerAccessTest,
	ReadPermissionTest,
	WritePermissionTest,
	DeletePermissionTest,
}

// TestResult — итог одного шага.
type TestResult struct {
	Status     string  `json:"status"`
	Message    string  `json:"message"`
	DurationMS float64 `json:"duration_ms"`
}

// NamedTestResult связывает результат с именем шага.
type NamedTestResult struct {
	Name string
	TestResult
}

// ConnectivityTests — упорядоченный набор результатов. В JSON это объект,
// ключи которого идут в порядке выполнения шагов.
type ConnectivityTests []NamedTestResult

// NewConnectivityTests создаёт набор, где все шаги заранее помечены как failed.
func NewConnectivityTests() ConnectivityTests {
	out := make(ConnectivityTests, len(ConnectivityTestNames))
	for i, name := range ConnectivityTestNames {
		out[i] = NamedTestResult{Name: name, TestResult: TestResult{Status: TestFailed}}
	}
	return out
}

// Get возвращает результат шага по имени.
func (c ConnectivityTests) Get(name string) (TestResult, bool) {
	for _, t := range c {
		if t.Name == name {
			return t.TestResult, true
		}
	}
	return TestResult{}, false
}

func (c ConnectivityTests) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, t := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(t.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(t.TestResult)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c *ConnectivityTests) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("connectivity tests: expected object")
	}

	var out ConnectivityTests
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("connectivity tests: expected key")
		}
		var r TestResult
		if err = dec.Decode(&r); err != nil {
			return err
		}
		out = append(out, NamedTestResult{Name: name, TestResult: r})
	}
	*c = out
	return nil
}

// ConnectivityReport — ответ /blob-test.
type ConnectivityReport struct {
	Status    string            `json:"status"`
	Timestamp Timestamp         `json:"timestamp"`
	Message   string            `json:"message"`
	Container string            `json:"container"`
	Tests     ConnectivityTests `json:"tests"`
}
