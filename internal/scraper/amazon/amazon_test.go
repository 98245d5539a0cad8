package amazon

import "testing"

const reviewPageFixture = `
<html><body>
<div data-hook="review">
  <span class="a-profile-name">Asha</span>
  <span class="a-icon-alt">5.0 out of 5 stars</span>
  <span data-hook="review-date">Reviewed in India on 5 June 2022</span>
  <span data-hook="review-body">Great battery life and solid build.</span>
</div>
<div data-hook="review">
  <span class="a-icon-alt">3.0 out of 5 stars</span>
  <span data-hook="review-date">Reviewed in India on 1 May 2022</span>
</div>
<ul><li class="a-last"><a href="/product-reviews/B0BTYC6P5F/?pageNumber=2">Next</a></li></ul>
</body></html>`

func TestReviewPage(t *testing.T) {
	a := New("https://www.amazon.in")
	reviews := a.ReviewPage(reviewPageFixture)
	if len(reviews) != 2 {
		t.Fatalf("got %d reviews; want 2", len(reviews))
	}

	first := reviews[0]
	if first.ReviewerName != "Asha" {
		t.Errorf("reviewer = %q", first.ReviewerName)
	}
	if first.StarRating != "5.0 out of 5 stars" {
		t.Errorf("star rating = %q", first.StarRating)
	}
	if first.ReviewBody != "Great battery life and solid build." {
		t.Errorf("body = %q", first.ReviewBody)
	}

	// Second block is missing the name and body markers.
	second := reviews[1]
	if second.ReviewerName != "Anonymous" {
		t.Errorf("missing name should yield Anonymous, got %q", second.ReviewerName)
	}
	if second.ReviewBody != "No Content" {
		t.Errorf("missing body should yield No Content, got %q", second.ReviewBody)
	}
}

func TestReviewPageEmpty(t *testing.T) {
	a := New("https://www.amazon.in")
	if got := a.ReviewPage(`<html><body><p>no reviews yet</p></body></html>`); len(got) != 0 {
		t.Errorf("got %d reviews; want 0", len(got))
	}
}

func TestProductSummary(t *testing.T) {
	a := New("https://www.amazon.in")

	summary := a.ProductSummary(`<html><body>
		<span class="a-icon-alt">4.3 out of 5 stars</span>
		<span id="acrCustomerReviewText">12,345 ratings</span>
	</body></html>`)
	if summary.OverallRating != "4.3" {
		t.Errorf("rating = %q; want 4.3", summary.OverallRating)
	}
	if summary.TotalRatings != "12,345 ratings" {
		t.Errorf("total = %q", summary.TotalRatings)
	}

	empty := a.ProductSummary(`<html><body><div>bare page</div></body></html>`)
	if empty.OverallRating != "N/A" || empty.TotalRatings != "N/A" {
		t.Errorf("missing markers should yield sentinels, got %+v", empty)
	}
}

func TestHasNextPage(t *testing.T) {
	a := New("https://www.amazon.in")
	if !a.HasNextPage(reviewPageFixture) {
		t.Error("fixture has a next link")
	}
	if a.HasNextPage(`<html><body><ul><li class="a-disabled a-last">Next</li></ul></body></html>`) {
		t.Error("disabled next item has no link and should not count")
	}
}

func TestContentMarker(t *testing.T) {
	a := New("https://www.amazon.in")
	if !a.ContentMarker(`<html><body><span id="productTitle">boAt Airdopes</span></body></html>`) {
		t.Error("product title should satisfy the marker")
	}
	if !a.ContentMarker(reviewPageFixture) {
		t.Error("review blocks should satisfy the marker")
	}
	if a.ContentMarker(`<html><body><p>503 Service Unavailable</p></body></html>`) {
		t.Error("error page should not satisfy the marker")
	}
}
