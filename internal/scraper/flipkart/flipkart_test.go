package flipkart

import "testing"

const reviewPageFixture = `
<html><body>
<div class="EKFha-">
  <div class="XQDdHH ga2 e3">4</div>
  <div class="ZmyHeo x1"><div>Sound quality is superb for the price.READ MORE</div></div>
  <div class="gHqwa8">
    <p class="_2NsDsF AwS1CA">Rohit K</p>
    <p class="_2NsDsF">Certified Buyer</p>
    <p class="_2NsDsF">Jan, 2024</p>
  </div>
</div>
<div class="EKFha-">
  <div class="XQDdHH ga2 e3">2</div>
  <div class="ZmyHeo x1"><div></div></div>
  <div class="gHqwa8"></div>
</div>
<span>Next</span>
</body></html>`

func TestReviewPage(t *testing.T) {
	a := New("https://www.flipkart.com")
	reviews := a.ReviewPage(reviewPageFixture)
	if len(reviews) != 2 {
		t.Fatalf("got %d reviews; want 2", len(reviews))
	}

	first := reviews[0]
	if first.ReviewerName != "Rohit K" {
		t.Errorf("reviewer = %q", first.ReviewerName)
	}
	if first.StarRating != "4" {
		t.Errorf("star rating = %q", first.StarRating)
	}
	if first.ReviewDate != "Jan, 2024" {
		t.Errorf("date = %q; the last timestamp in the user block is the review date", first.ReviewDate)
	}
	if first.ReviewBody != "Sound quality is superb for the price." {
		t.Errorf("body = %q; READ MORE marker should be stripped", first.ReviewBody)
	}

	// Second block is missing the name, date and body.
	second := reviews[1]
	if second.ReviewerName != "Anonymous" {
		t.Errorf("missing name should yield Anonymous, got %q", second.ReviewerName)
	}
	if second.ReviewDate != "N/A" {
		t.Errorf("missing date should yield N/A, got %q", second.ReviewDate)
	}
	if second.ReviewBody != "No Content" {
		t.Errorf("missing body should yield No Content, got %q", second.ReviewBody)
	}
}

func TestReviewPageEmpty(t *testing.T) {
	a := New("https://www.flipkart.com")
	if got := a.ReviewPage(`<html><body><p>no reviews yet</p></body></html>`); len(got) != 0 {
		t.Errorf("got %d reviews; want 0", len(got))
	}
}

func TestProductSummary(t *testing.T) {
	a := New("https://www.flipkart.com")

	summary := a.ProductSummary(`<html><body>
		<div class="ipqd2A">4.2</div>
		<span>1,08,423 Ratings &amp; 8,512 Reviews</span>
	</body></html>`)
	if summary.OverallRating != "4.2" {
		t.Errorf("rating = %q; want 4.2", summary.OverallRating)
	}
	if summary.TotalRatings != "1,08,423 Ratings & 8,512 Reviews" {
		t.Errorf("total = %q", summary.TotalRatings)
	}

	empty := a.ProductSummary(`<html><body><div>bare page</div></body></html>`)
	if empty.OverallRating != "N/A" || empty.TotalRatings != "N/A" {
		t.Errorf("missing markers should yield sentinels, got %+v", empty)
	}
}

func TestHasNextPage(t *testing.T) {
	a := New("https://www.flipkart.com")
	if !a.HasNextPage(reviewPageFixture) {
		t.Error("fixture has a Next control")
	}
	if a.HasNextPage(`<html><body><span>Previous</span></body></html>`) {
		t.Error("page without a Next control should report false")
	}
}

func TestContentMarker(t *testing.T) {
	a := New("https://www.flipkart.com")
	if !a.ContentMarker(reviewPageFixture) {
		t.Error("review blocks should satisfy the marker")
	}
	if !a.ContentMarker(`<html><body><a class="wjcEIp" title="boAt Airdopes" href="/p/x"></a></body></html>`) {
		t.Error("listing grid should satisfy the marker")
	}
	if a.ContentMarker(`<html><body><p>Site is down</p></body></html>`) {
		t.Error("error page should not satisfy the marker")
	}
}

func TestCategoryLinks(t *testing.T) {
	a := New("https://www.flipkart.com")
	markup := `<html><body>
		<a href="/boat-airdopes/product-reviews/itm1?aid=overall"><div class="NTiEl0">Overall</div></a>
		<a href="/boat-airdopes/product-reviews/itm1?aid=0"><div class="NTiEl0">Sound Quality</div></a>
		<a href="/boat-airdopes/product-reviews/itm1?aid=1"><span class="AgRA4c">Battery</span></a>
		<a href="/boat-airdopes/product-reviews/itm1?page=2"><div class="NTiEl0">2</div></a>
		<a href="/boat-airdopes/product-reviews/itm1?page=2"><div class="NTiEl0">Next</div></a>
	</body></html>`

	links := a.categoryLinks(markup)
	if len(links) != 2 {
		t.Fatalf("got %d category links; want 2 (Overall, digits and Next are skipped)", len(links))
	}
	if links[0].label != "Sound Quality" || links[1].label != "Battery" {
		t.Errorf("labels = %q, %q", links[0].label, links[1].label)
	}
}

func TestCategorySentiment(t *testing.T) {
	a := New("https://www.flipkart.com")
	markup := `<html><body>
		<text class="_2DdnFS">4.4</text>
		<div class="SmC0g8">
			<span class="WtBCuZ">312</span> positive and
			<span class="_9VjbDx">41</span> negative mentions
		</div>
	</body></html>`

	fs := a.categorySentiment("Sound Quality", markup)
	if fs.Rating != "4.4" {
		t.Errorf("rating = %q", fs.Rating)
	}
	if fs.Positive != "312" || fs.Negative != "41" {
		t.Errorf("counts = +%q -%q", fs.Positive, fs.Negative)
	}

	bare := a.categorySentiment("Bass", `<html><body><p>nothing here</p></body></html>`)
	if bare.Rating != "N/A" || bare.Positive != "N/A" || bare.Negative != "N/A" {
		t.Errorf("missing widgets should yield sentinels, got %+v", bare)
	}
}
