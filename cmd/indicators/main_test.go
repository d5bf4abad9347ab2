package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rxtech-lab/argo-indicators/internal/config"
	"github.com/rxtech-lab/argo-indicators/internal/version"
	"github.com/rxtech-lab/argo-indicators/mocks"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type IndicatorsCmdTestSuite struct {
	suite.Suite
	tempDir string
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
}

func TestIndicatorsCmdSuite(t *testing.T) {
	suite.Run(t, new(IndicatorsCmdTestSuite))
}

func (suite *IndicatorsCmdTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
	suite.stdout = &bytes.Buffer{}
	suite.stderr = &bytes.Buffer{}
}

func (suite *IndicatorsCmdTestSuite) run(args ...string) error {
	return newApp(suite.stdout, suite.stderr).Run(context.Background(), append([]string{"indicators"}, args...))
}

// writeMarketChart writes a CoinGecko market_chart file with generated prices.
func (suite *IndicatorsCmdTestSuite) writeMarketChart(name string, count int, seed int64) string {
	config := mocks.DefaultConfig()
	config.Count = count
	series := mocks.NewDataGenerator(seed).Generate(config)

	points := make([]string, len(series))
	for i, sample := range series {
		points[i] = fmt.Sprintf("[%d, %v]", sample.Timestamp, sample.Price)
	}

	path := filepath.Join(suite.tempDir, name)
	content := fmt.Sprintf(`{"prices": [%s], "market_caps": [], "total_volumes": []}`, strings.Join(points, ","))
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o600))

	return path
}

func (suite *IndicatorsCmdTestSuite) TestCompute() {
	path := suite.writeMarketChart("bitcoin.json", 60, 1)

	err := suite.run("compute", "--symbol", "BTC", "--log-level", "error", path)
	suite.Require().NoError(err)

	var doc map[string]any
	suite.Require().NoError(json.Unmarshal(suite.stdout.Bytes(), &doc))
	suite.Equal("BTC", doc["symbol"])
	suite.Equal(float64(60), doc["samples"])

	indicators := doc["indicators"].(map[string]any)
	for _, key := range []string{"rsi", "ma", "ema", "macd", "atr", "stochastic_oscillator", "roc", "obv_proxy"} {
		suite.Contains(indicators, key)
	}

	suite.NotContains(doc, "errors")
}

func (suite *IndicatorsCmdTestSuite) TestComputeWithOverrides() {
	path := suite.writeMarketChart("eth.json", 10, 2)
	output := filepath.Join(suite.tempDir, "report.yaml")

	err := suite.run("compute",
		"--indicators", "rsi", "--indicators", "ma",
		"--format", "yaml",
		"--precision", "0",
		"--log-level", "error",
		"--output", output,
		path)
	suite.Require().NoError(err)
	suite.Empty(suite.stdout.String())

	data, err := os.ReadFile(output)
	suite.Require().NoError(err)

	var doc map[string]any
	suite.Require().NoError(yaml.Unmarshal(data, &doc))

	indicators := doc["indicators"].(map[string]any)
	suite.Len(indicators, 1)
	suite.Contains(indicators, "ma")

	// ten samples are not enough for RSI(14)
	errs := doc["errors"].(map[string]any)
	suite.Contains(errs, "rsi")
}

func (suite *IndicatorsCmdTestSuite) TestComputeWithConfigFile() {
	path := suite.writeMarketChart("xrp.json", 40, 3)
	configPath := filepath.Join(suite.tempDir, "config.yaml")
	suite.Require().NoError(os.WriteFile(configPath, []byte("symbol: XRP\nindicators: [ema]\nlogLevel: error\n"), 0o600))

	err := suite.run("compute", "--config", configPath, path)
	suite.Require().NoError(err)

	var doc map[string]any
	suite.Require().NoError(json.Unmarshal(suite.stdout.Bytes(), &doc))
	suite.Equal("XRP", doc["symbol"])
	suite.Len(doc["indicators"], 1)
}

func (suite *IndicatorsCmdTestSuite) TestComputeErrors() {
	suite.Error(suite.run("compute"))
	suite.Error(suite.run("compute", "--log-level", "error", filepath.Join(suite.tempDir, "missing.json")))
	suite.Error(suite.run("compute", "--rsi-period", "0", suite.writeMarketChart("a.json", 20, 1)))
	suite.Error(suite.run("compute", "--indicators", "vwap", suite.writeMarketChart("b.json", 20, 1)))
}

func (suite *IndicatorsCmdTestSuite) TestBatch() {
	suite.writeMarketChart("btc.json", 40, 1)
	suite.writeMarketChart("eth.json", 50, 2)

	err := suite.run("batch", "--workers", "2", "--log-level", "error", filepath.Join(suite.tempDir, "*.json"))
	suite.Require().NoError(err)

	var docs []map[string]any
	suite.Require().NoError(json.Unmarshal(suite.stdout.Bytes(), &docs))
	suite.Require().Len(docs, 2)
	suite.Equal(filepath.Join(suite.tempDir, "btc.json"), docs[0]["source"])
	suite.Equal(float64(50), docs[1]["samples"])
	suite.Contains(suite.stderr.String(), "Computing indicators")
}

func (suite *IndicatorsCmdTestSuite) TestBatchNoMatches() {
	err := suite.run("batch", filepath.Join(suite.tempDir, "*.parquet"))
	suite.Error(err)
	suite.Contains(err.Error(), "no files match")

	suite.Error(suite.run("batch"))
}

func (suite *IndicatorsCmdTestSuite) TestExpandPathsDeduplicates() {
	a := suite.writeMarketChart("a.json", 2, 1)
	b := suite.writeMarketChart("b.json", 2, 1)

	paths, err := expandPaths([]string{b, filepath.Join(suite.tempDir, "*.json")})
	suite.Require().NoError(err)
	suite.Equal([]string{a, b}, paths)
}

func (suite *IndicatorsCmdTestSuite) TestSchemaToStdout() {
	suite.Require().NoError(suite.run("schema"))

	var schema map[string]any
	suite.Require().NoError(json.Unmarshal(suite.stdout.Bytes(), &schema))
	suite.Contains(schema, "properties")
}

func (suite *IndicatorsCmdTestSuite) TestSchemaToDirectory() {
	dir := filepath.Join(suite.tempDir, "config")
	suite.Require().NoError(suite.run("schema", "--output", dir))

	schemaContent, err := os.ReadFile(filepath.Join(dir, schemaFileName))
	suite.Require().NoError(err)
	suite.NotEmpty(schemaContent)

	sample, err := os.ReadFile(filepath.Join(dir, sampleConfigFileName))
	suite.Require().NoError(err)
	suite.True(strings.HasPrefix(string(sample), "# yaml-language-server: $schema="+schemaFileName))

	// the sample config is a valid configuration
	cfg, err := config.Parse(sample)
	suite.Require().NoError(err)
	suite.Equal(14, cfg.RSIPeriod)

	// existing sample configs are left alone
	suite.Require().NoError(os.WriteFile(filepath.Join(dir, sampleConfigFileName), []byte("symbol: KEEP\n"), 0o600))
	suite.Require().NoError(suite.run("schema", "--output", dir))

	sample, err = os.ReadFile(filepath.Join(dir, sampleConfigFileName))
	suite.Require().NoError(err)
	suite.Equal("symbol: KEEP\n", string(sample))
}

func (suite *IndicatorsCmdTestSuite) TestVersion() {
	suite.Require().NoError(suite.run("version"))
	suite.Equal(version.GetVersion()+"\n", suite.stdout.String())
}

func (suite *IndicatorsCmdTestSuite) TestComputeExtremePrices() {
	path := filepath.Join(suite.tempDir, "extreme.json")
	content := `{"prices": [[1700000000000, 1e308], [1700000300000, 1e-300], [1700000600000, 1e308]]}`
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o600))

	suite.Require().NotPanics(func() {
		suite.Require().NoError(suite.run("compute", "--log-level", "error", "--indicators", "ma", "--indicators", "atr", path))
	})

	var doc map[string]any
	suite.Require().NoError(json.Unmarshal(suite.stdout.Bytes(), &doc))

	indicators := doc["indicators"].(map[string]any)
	suite.Contains(indicators, "ma")
	suite.Contains(indicators, "atr")
}
