package testutils

import (
	"github.com/itbasis/go-clock"
)

// TestController bundles a fake server for every upstream the controller
// talks to. Clients are built by the tests from the URLs.
type TestController struct {
	Clock         *clock.Mock
	FootballData  *FakeFootballDataServer
	APIFootball   *FakeAPIFootballServer
	FBref         *FakeFBrefServer
	Understat     *FakeUnderstatServer
	Transfermarkt *FakeTransfermarktServer
	News          *FakeNewsFeedServer
}

func (c *TestController) Close() {
	c.FootballData.Close()
	c.APIFootball.Close()
	c.FBref.Close()
	c.Understat.Close()
	c.Transfermarkt.Close()
	c.News.Close()
}

// NewTestController uses the clock of the db when one is given, so runs and
// rumors share the same time.
func NewTestController(db *TestDB) *TestController {
	clock := NewMockClock()
	if db != nil {
		clock = db.Clock
	}

	return &TestController{
		Clock:         clock,
		FootballData:  NewFakeFootballDataServer(),
		APIFootball:   NewFakeAPIFootballServer(),
		FBref:         NewFakeFBrefServer(),
		Understat:     NewFakeUnderstatServer(),
		Transfermarkt: NewFakeTransfermarktServer(),
		News:          NewFakeNewsFeedServer(),
	}
}
