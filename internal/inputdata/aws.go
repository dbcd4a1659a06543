package inputdata

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	athtypes "github.com/aws/aws-sdk-go-v2/service/athena/types"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	cdtypes "github.com/aws/aws-sdk-go-v2/service/codedeploy/types"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	tagtypes "github.com/aws/aws-sdk-go-v2/service/resourcegroupstaggingapi/types"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
)

// The AWS transformers accept the JSON printed by the AWS CLI (or marshalled
// SDK outputs) for a handful of read APIs and reshape it into row or series
// trees that field paths and chart builders handle well.

func decodeAWS(name, raw string, out any) error {
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return domain.Errorf(domain.CodeInvalidInputFormat, "%s: %w", name, err)
	}
	return nil
}

func hasKey(head, key string) bool {
	return strings.HasPrefix(strings.TrimSpace(head), "{") && strings.Contains(head, `"`+key+`"`)
}

// Athena reshapes GetQueryResults output into one object per row.
type Athena struct{}

var athenaNumericTypes = map[string]bool{
	"tinyint": true, "smallint": true, "integer": true, "int": true, "bigint": true,
	"double": true, "float": true, "real": true, "decimal": true,
}

func (Athena) Name() string { return NameAthena }

func (Athena) Detect(head string) bool { return hasKey(head, "ResultSet") }

func (Athena) Transform(raw string) (any, error) {
	var out struct {
		ResultSet *athtypes.ResultSet
	}
	if err := decodeAWS(NameAthena, raw, &out); err != nil {
		return nil, err
	}
	if out.ResultSet == nil {
		return nil, domain.Errorf(domain.CodeInvalidInputFormat, "athena: missing ResultSet")
	}
	rows := out.ResultSet.Rows

	var headers []string
	numeric := map[int]bool{}
	if md := out.ResultSet.ResultSetMetadata; md != nil && len(md.ColumnInfo) > 0 {
		for i, col := range md.ColumnInfo {
			headers = append(headers, aws.ToString(col.Name))
			base, _, _ := strings.Cut(strings.ToLower(aws.ToString(col.Type)), "(")
			numeric[i] = athenaNumericTypes[base]
		}
		// SELECT results repeat the column names as the first row.
		if len(rows) > 0 && rowEquals(rows[0], headers) {
			rows = rows[1:]
		}
	} else if len(rows) > 0 {
		for _, d := range rows[0].Data {
			headers = append(headers, aws.ToString(d.VarCharValue))
		}
		rows = rows[1:]
	}

	items := make([]any, 0, len(rows))
	for _, row := range rows {
		item := make(map[string]any, len(headers))
		for i, key := range headers {
			if i >= len(row.Data) || row.Data[i].VarCharValue == nil {
				item[key] = nil
				continue
			}
			val := *row.Data[i].VarCharValue
			if numeric[i] {
				if f, err := strconv.ParseFloat(val, 64); err == nil {
					item[key] = f
					continue
				}
			}
			item[key] = val
		}
		items = append(items, item)
	}
	return items, nil
}

func rowEquals(row athtypes.Row, headers []string) bool {
	if len(row.Data) != len(headers) {
		return false
	}
	for i, d := range row.Data {
		if aws.ToString(d.VarCharValue) != headers[i] {
			return false
		}
	}
	return true
}

// CostExplorer reshapes GetCostAndUsage output into one point per period (and group).
type CostExplorer struct{}

func (CostExplorer) Name() string { return NameCostExplorer }

func (CostExplorer) Detect(head string) bool { return hasKey(head, "ResultsByTime") }

func (CostExplorer) Transform(raw string) (any, error) {
	var out struct {
		ResultsByTime []cetypes.ResultByTime
	}
	if err := decodeAWS(NameCostExplorer, raw, &out); err != nil {
		return nil, err
	}
	points := make([]any, 0, len(out.ResultsByTime))
	for _, r := range out.ResultsByTime {
		start, end := "", ""
		if r.TimePeriod != nil {
			start, end = aws.ToString(r.TimePeriod.Start), aws.ToString(r.TimePeriod.End)
		}
		if len(r.Groups) == 0 {
			p := map[string]any{"start": start, "end": end, "estimated": r.Estimated}
			addMetrics(p, r.Total)
			points = append(points, p)
			continue
		}
		for _, g := range r.Groups {
			p := map[string]any{
				"start":     start,
				"end":       end,
				"estimated": r.Estimated,
				"group":     strings.Join(g.Keys, ", "),
			}
			addMetrics(p, g.Metrics)
			points = append(points, p)
		}
	}
	return points, nil
}

func addMetrics(p map[string]any, metrics map[string]cetypes.MetricValue) {
	for name, m := range metrics {
		if m.Amount == nil {
			p[name] = nil
			continue
		}
		if f, err := strconv.ParseFloat(*m.Amount, 64); err == nil {
			p[name] = f
		} else {
			p[name] = *m.Amount
		}
		if m.Unit != nil {
			p["unit"] = *m.Unit
		}
	}
}

// CloudWatch reshapes GetMetricData output into series of timestamped points.
type CloudWatch struct{}

func (CloudWatch) Name() string { return NameCloudWatch }

func (CloudWatch) Detect(head string) bool { return hasKey(head, "MetricDataResults") }

func (CloudWatch) Transform(raw string) (any, error) {
	var out struct {
		MetricDataResults []cwtypes.MetricDataResult
	}
	if err := decodeAWS(NameCloudWatch, raw, &out); err != nil {
		return nil, err
	}
	series := make([]any, 0, len(out.MetricDataResults))
	for _, r := range out.MetricDataResults {
		name := aws.ToString(r.Label)
		if name == "" {
			name = aws.ToString(r.Id)
		}
		points := make([]any, 0, len(r.Values))
		for i, v := range r.Values {
			p := map[string]any{"value": finiteOrNil(v)}
			if i < len(r.Timestamps) {
				ts := r.Timestamps[i].UTC()
				p["timestamp"] = ts.Format(time.RFC3339)
				p["time"] = ts.Format("15:04")
			}
			points = append(points, p)
		}
		series = append(series, map[string]any{
			"name":       name,
			"id":         aws.ToString(r.Id),
			"statusCode": string(r.StatusCode),
			"dataPoints": points,
		})
	}
	return map[string]any{
		"metadata": map[string]any{"source": NameCloudWatch},
		"series":   series,
	}, nil
}

// AWSTags reshapes Resource Groups Tagging API GetResources output.
type AWSTags struct{}

func (AWSTags) Name() string { return NameAWSTags }

func (AWSTags) Detect(head string) bool { return hasKey(head, "ResourceTagMappingList") }

func (AWSTags) Transform(raw string) (any, error) {
	var out struct {
		ResourceTagMappingList []tagtypes.ResourceTagMapping
	}
	if err := decodeAWS(NameAWSTags, raw, &out); err != nil {
		return nil, err
	}
	resources := make([]any, 0, len(out.ResourceTagMappingList))
	for _, m := range out.ResourceTagMappingList {
		arn := aws.ToString(m.ResourceARN)
		tags := make(map[string]any, len(m.Tags))
		for _, t := range m.Tags {
			tags[aws.ToString(t.Key)] = aws.ToString(t.Value)
		}
		resources = append(resources, map[string]any{
			"resourceArn": arn,
			"service":     arnService(arn),
			"tags":        tags,
		})
	}
	return resources, nil
}

// arnService extracts the service segment of arn:partition:service:region:account:resource.
func arnService(arn string) string {
	parts := strings.SplitN(arn, ":", 4)
	if len(parts) < 3 {
		return ""
	}
	return parts[2]
}

// CodeDeploy reshapes BatchGetDeployments output into one object per deployment.
type CodeDeploy struct{}

type deploymentInfo struct {
	DeploymentID        string                    `json:"deploymentId"`
	ApplicationName     string                    `json:"applicationName"`
	DeploymentGroupName string                    `json:"deploymentGroupName"`
	Status              cdtypes.DeploymentStatus  `json:"status"`
	Creator             cdtypes.DeploymentCreator `json:"creator"`
	Description         string                    `json:"description"`
	CreateTime          json.RawMessage           `json:"createTime"`
	CompleteTime        json.RawMessage           `json:"completeTime"`
}

func (CodeDeploy) Name() string { return NameCodeDeploy }

func (CodeDeploy) Detect(head string) bool { return hasKey(head, "deploymentsInfo") }

func (CodeDeploy) Transform(raw string) (any, error) {
	var out struct {
		DeploymentsInfo []deploymentInfo `json:"deploymentsInfo"`
	}
	if err := decodeAWS(NameCodeDeploy, raw, &out); err != nil {
		return nil, err
	}
	deployments := make([]any, 0, len(out.DeploymentsInfo))
	for _, d := range out.DeploymentsInfo {
		deployments = append(deployments, map[string]any{
			"deploymentId":        d.DeploymentID,
			"applicationName":     d.ApplicationName,
			"deploymentGroupName": d.DeploymentGroupName,
			"status":              string(d.Status),
			"succeeded":           d.Status == cdtypes.DeploymentStatusSucceeded,
			"creator":             string(d.Creator),
			"description":         d.Description,
			"createTime":          awsTime(d.CreateTime),
			"completeTime":        awsTime(d.CompleteTime),
		})
	}
	return deployments, nil
}

// awsTime accepts the ISO strings the CLI prints and the epoch seconds the
// JSON protocol uses, returning RFC3339 or nil.
func awsTime(raw json.RawMessage) any {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		sec := int64(f)
		return time.Unix(sec, int64((f-float64(sec))*1e9)).UTC().Format(time.RFC3339)
	}
	return nil
}
