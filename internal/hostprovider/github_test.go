package hostprovider

import "testing"

func TestRepoSlug(t *testing.T) {
	owner, repo, err := RepoSlug("distplan/distplan")
	if err != nil {
		t.Fatalf("RepoSlug: %v", err)
	}
	if owner != "distplan" || repo != "distplan" {
		t.Errorf("got %s/%s, want distplan/distplan", owner, repo)
	}
}

func TestRepoSlugInvalid(t *testing.T) {
	if _, _, err := RepoSlug("not-a-slug"); err == nil {
		t.Error("expected error for slug without a slash")
	}
}
