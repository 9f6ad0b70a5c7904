package models

import "testing"

func TestTorrentMutators(t *testing.T) {
	t.Run("MimicPause clears rates", func(t *testing.T) {
		tr := Torrent{Status: StatusDownloading, RateDownload: 100, RateUpload: 50}
		tr.MimicPause()

		if tr.Status != StatusPaused {
			t.Errorf("expected Paused, got %s", tr.Status)
		}
		if tr.RateDownload != 0 || tr.RateUpload != 0 {
			t.Errorf("expected zero rates, got %d/%d", tr.RateDownload, tr.RateUpload)
		}
	})

	t.Run("MimicResume depends on progress", func(t *testing.T) {
		partial := Torrent{Status: StatusPaused, PartDone: 0.5}
		partial.MimicResume()
		if partial.Status != StatusDownloading {
			t.Errorf("expected Downloading, got %s", partial.Status)
		}

		done := Torrent{Status: StatusPaused, PartDone: 1}
		done.MimicResume()
		if done.Status != StatusSeeding {
			t.Errorf("expected Seeding, got %s", done.Status)
		}
	})

	t.Run("MimicStart clears error", func(t *testing.T) {
		tr := Torrent{Status: StatusError, Error: "Dummy error", PartDone: 0.2}
		tr.MimicStart()
		if tr.Status != StatusDownloading {
			t.Errorf("expected Downloading, got %s", tr.Status)
		}
		if tr.Error != "" {
			t.Errorf("expected error to be cleared, got %q", tr.Error)
		}
	})

	t.Run("MimicStop queues", func(t *testing.T) {
		tr := Torrent{Status: StatusSeeding, RateUpload: 10}
		tr.MimicStop()
		if tr.Status != StatusQueued {
			t.Errorf("expected Queued, got %s", tr.Status)
		}
		if tr.RateUpload != 0 {
			t.Errorf("expected zero upload rate, got %d", tr.RateUpload)
		}
	})

	t.Run("Ratio", func(t *testing.T) {
		tr := Torrent{DownloadedEver: 200, UploadedEver: 100}
		if tr.Ratio() != 0.5 {
			t.Errorf("expected ratio 0.5, got %f", tr.Ratio())
		}
		if (&Torrent{}).Ratio() != 0 {
			t.Error("expected zero ratio for empty torrent")
		}
	})
}

func TestParsePriority(t *testing.T) {
	tc := []struct {
		in      string
		want    Priority
		wantErr bool
	}{
		{in: "high", want: PriorityHigh},
		{in: " Normal ", want: PriorityNormal},
		{in: "LOW", want: PriorityLow},
		{in: "off", want: PriorityOff},
		{in: "urgent", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePriority(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePriority(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParsePriority(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestDaemonSettings(t *testing.T) {
	s := DaemonSettings{Address: "seedbox.lan", Port: 9091, Username: "erick", Folder: "/transmission/"}

	if got := s.HumanReadableIdentifier(); got != "erick@seedbox.lan:9091" {
		t.Errorf("unexpected identifier %s", got)
	}
	if got := s.BaseURL(); got != "http://seedbox.lan:9091/transmission" {
		t.Errorf("unexpected base URL %s", got)
	}

	s.SSL = true
	s.Folder = ""
	if got := s.BaseURL(); got != "https://seedbox.lan:9091" {
		t.Errorf("unexpected SSL base URL %s", got)
	}

	if _, err := ParseDaemon("Transmission"); err != nil {
		t.Errorf("expected transmission to parse: %v", err)
	}
	if _, err := ParseDaemon("nope"); err == nil {
		t.Error("expected error for unknown daemon")
	}
}
