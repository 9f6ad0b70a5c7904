// package formatter renders torrent snapshots, file lists and task history as text, JSON, YAML, CSV or Markdown
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/desertthunder/tdx/internal/models"
	"github.com/desertthunder/tdx/internal/shared"
)

// Format is an output format accepted by [Torrents].
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatCSV, FormatMarkdown}
}

// ParseFormat accepts a format name or a common alias (txt, yml, md).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, s)
	}
}

// Extension returns the file extension used when writing f to disk.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	case FormatCSV:
		return ".csv"
	case FormatMarkdown:
		return ".md"
	default:
		return ".txt"
	}
}

// Torrents renders torrents in the given format.
func Torrents(f Format, torrents []models.Torrent) ([]byte, error) {
	switch f {
	case FormatJSON:
		return TorrentsToJSON(torrents)
	case FormatYAML:
		return TorrentsToYAML(torrents)
	case FormatCSV:
		return TorrentsToCSV(torrents)
	case FormatMarkdown:
		return TorrentsToMarkdown(torrents)
	case FormatText, "":
		return TorrentsToText(torrents)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, f)
	}
}

// TorrentsToJSON converts torrents to indented JSON. An empty list renders as [].
func TorrentsToJSON(torrents []models.Torrent) ([]byte, error) {
	if torrents == nil {
		torrents = []models.Torrent{}
	}
	data, err := json.MarshalIndent(torrents, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// TorrentsToYAML converts torrents to a YAML sequence.
func TorrentsToYAML(torrents []models.Torrent) ([]byte, error) {
	if torrents == nil {
		torrents = []models.Torrent{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(torrents); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// TorrentsToCSV converts torrents to CSV with columns: Hash, Name, Status, Label, Size, Done, Down, Up, ETA, Ratio, Error
func TorrentsToCSV(torrents []models.Torrent) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Hash", "Name", "Status", "Label", "Size", "Done", "Down", "Up", "ETA", "Ratio", "Error"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, t := range torrents {
		record := []string{
			t.UniqueID,
			t.Name,
			t.Status.String(),
			t.Label,
			strconv.FormatInt(t.TotalSize, 10),
			strconv.FormatFloat(t.PartDone, 'f', 4, 64),
			strconv.FormatInt(t.RateDownload, 10),
			strconv.FormatInt(t.RateUpload, 10),
			strconv.FormatInt(t.ETA, 10),
			strconv.FormatFloat(t.Ratio(), 'f', 2, 64),
			t.Error,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// TorrentsToMarkdown converts torrents to a Markdown table grouped under a heading.
func TorrentsToMarkdown(torrents []models.Torrent) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Torrents\n\n")
	buf.WriteString(fmt.Sprintf("**Total**: %d\n\n", len(torrents)))
	if len(torrents) == 0 {
		return buf.Bytes(), nil
	}

	buf.WriteString("| Name | Status | Label | Size | Done | ETA |\n")
	buf.WriteString("|------|--------|-------|------|------|-----|\n")
	for _, t := range torrents {
		buf.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
			escapeMarkdown(t.Name), t.Status, escapeMarkdown(t.Label),
			FormatSize(t.TotalSize), FormatPercent(t.PartDone), FormatETA(t.ETA)))
	}

	return buf.Bytes(), nil
}

// TorrentsToText renders torrents as a bordered table.
func TorrentsToText(torrents []models.Torrent) ([]byte, error) {
	if len(torrents) == 0 {
		return []byte("No torrents.\n"), nil
	}

	rows := make([][]string, 0, len(torrents))
	for _, t := range torrents {
		rows = append(rows, []string{
			t.UniqueID,
			t.Name,
			t.Status.String(),
			t.Label,
			FormatSize(t.TotalSize),
			FormatPercent(t.PartDone),
			FormatRate(t.RateDownload),
			FormatRate(t.RateUpload),
			FormatETA(t.ETA),
		})
	}

	return renderTable([]string{"HASH", "NAME", "STATUS", "LABEL", "SIZE", "DONE", "DOWN", "UP", "ETA"}, rows), nil
}

// TorrentToText renders a single torrent with its details, if any.
func TorrentToText(t models.Torrent, details *models.TorrentDetails) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Name:       %s\n", t.Name))
	buf.WriteString(fmt.Sprintf("Hash:       %s\n", t.UniqueID))
	buf.WriteString(fmt.Sprintf("Status:     %s\n", t.Status))
	buf.WriteString(fmt.Sprintf("Location:   %s\n", t.LocationDir))
	if t.Label != "" {
		buf.WriteString(fmt.Sprintf("Label:      %s\n", t.Label))
	}
	buf.WriteString(fmt.Sprintf("Size:       %s (%s done)\n", FormatSize(t.TotalSize), FormatPercent(t.PartDone)))
	buf.WriteString(fmt.Sprintf("Rates:      %s down, %s up\n", FormatRate(t.RateDownload), FormatRate(t.RateUpload)))
	buf.WriteString(fmt.Sprintf("Peers:      %d seeders, %d leechers\n", t.SeedersConnected, t.LeechersConnected))
	buf.WriteString(fmt.Sprintf("ETA:        %s\n", FormatETA(t.ETA)))
	buf.WriteString(fmt.Sprintf("Ratio:      %.2f\n", t.Ratio()))
	buf.WriteString(fmt.Sprintf("Added:      %s\n", t.DateAdded.Format("2006-01-02 15:04")))
	if t.Error != "" {
		buf.WriteString(fmt.Sprintf("Error:      %s\n", t.Error))
	}

	if details != nil {
		buf.WriteString("\nTrackers:\n")
		for _, tr := range details.Trackers {
			buf.WriteString(fmt.Sprintf("  - %s\n", tr))
		}
		if len(details.Errors) > 0 {
			buf.WriteString("\nErrors:\n")
			for _, e := range details.Errors {
				buf.WriteString(fmt.Sprintf("  - %s\n", e))
			}
		}
	}

	return buf.Bytes()
}

// FilesToText renders the files of a torrent.
func FilesToText(files []models.TorrentFile) []byte {
	if len(files) == 0 {
		return []byte("No files.\n")
	}

	rows := make([][]string, 0, len(files))
	for _, f := range files {
		rows = append(rows, []string{
			f.Key,
			f.RelativePath,
			FormatSize(f.TotalSize),
			FormatPercent(f.PartDone()),
			f.Priority.String(),
		})
	}
	return renderTable([]string{"KEY", "PATH", "SIZE", "DONE", "PRIORITY"}, rows)
}

// LabelsToText renders labels with their torrent counts.
func LabelsToText(labels []models.Label) []byte {
	var buf bytes.Buffer
	for _, l := range labels {
		if l.Count > 0 {
			buf.WriteString(fmt.Sprintf("%s (%d)\n", l.Name, l.Count))
		} else {
			buf.WriteString(l.Name + "\n")
		}
	}
	return buf.Bytes()
}

// WebsearchToText renders websearch settings in order.
func WebsearchToText(settings []models.WebsearchSetting) []byte {
	if len(settings) == 0 {
		return []byte("No websearch sites configured.\n")
	}

	rows := make([][]string, 0, len(settings))
	for _, s := range settings {
		rows = append(rows, []string{s.Key(), s.Name(), s.BaseURL()})
	}
	return renderTable([]string{"KEY", "NAME", "URL"}, rows)
}

// DaemonsToText renders configured daemons, marking those the supported func has an adapter for.
func DaemonsToText(settings []models.DaemonSettings, supported func(models.Daemon) bool) []byte {
	if len(settings) == 0 {
		return []byte("No daemons configured.\n")
	}

	rows := make([][]string, 0, len(settings))
	for _, s := range settings {
		adapter := "no"
		if supported != nil && supported(s.Type) {
			adapter = "yes"
		}
		rows = append(rows, []string{s.Name, s.Type.String(), s.HumanReadableIdentifier(), adapter})
	}
	return renderTable([]string{"NAME", "TYPE", "ADDRESS", "ADAPTER"}, rows)
}

// TaskRecordsToText renders journaled tasks, newest first as given.
func TaskRecordsToText(records []models.TaskRecord) []byte {
	if len(records) == 0 {
		return []byte("No tasks recorded.\n")
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		detail := r.Target
		if !r.Success {
			detail = strings.TrimSpace(r.ErrorType + ": " + r.ErrorMessage)
		}
		rows = append(rows, []string{
			strconv.Itoa(r.Sequence),
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.DaemonName,
			r.Method,
			r.Outcome(),
			r.Duration.String(),
			detail,
		})
	}
	return renderTable([]string{"#", "STARTED", "DAEMON", "METHOD", "OUTCOME", "TOOK", "DETAIL"}, rows)
}

// WriteExport writes torrents in the given format to path.
//
// Defaults to torrents{ext} in the working directory.
func WriteExport(torrents []models.Torrent, f Format, path string) (string, error) {
	if path == "" {
		path = "torrents" + f.Extension()
	}

	data, err := Torrents(f, torrents)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func renderTable(headers []string, rows [][]string) []byte {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return []byte(t.String() + "\n")
}

func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
