package player_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/inetmap/internal/atlas"
	"github.com/san-kum/inetmap/internal/join"
	"github.com/san-kum/inetmap/internal/player"
	"github.com/san-kum/inetmap/internal/scale"
)

type fixture struct {
	store   *atlas.Store
	years   []int
	scale   *scale.Scale
	surface *fakeSurface
	player  *player.Player
}

func buildFixture() (*fixture, error) {
	st := atlas.New(atlas.DefaultNames())
	for _, name := range []string{"United States", "France", "Chad"} {
		if _, err := st.Add(name, nil); err != nil {
			return nil, err
		}
	}
	obs := []join.Observation{
		{Country: "USA", Year: 1995, Value: 10.0},
		{Country: "France", Year: 1995, Value: 5.0},
		{Country: "France", Year: 2000, Value: 20.0},
	}
	report, err := join.Run(st, obs, join.Options{})
	if err != nil {
		return nil, err
	}

	f := &fixture{
		store:   st,
		years:   report.Years,
		scale:   scale.New(join.Max(obs), scale.DefaultOptions()),
		surface: newFakeSurface(),
	}
	f.player = player.New(st, f.years, f.scale, f.surface, player.DefaultOptions())
	return f, nil
}

func newFixture() *fixture {
	f, err := buildFixture()
	Expect(err).NotTo(HaveOccurred())
	return f
}

func (f *fixture) color(v float64) string { return f.scale.ColorFor(v, true).Hex() }

func (f *fixture) autoPlay() {
	f.player.Start()
	Expect(f.player.BeginAutoPlay()).To(BeTrue())
	for f.player.Tick() {
	}
}

var _ = Describe("Player", func() {
	var f *fixture

	BeforeEach(func() {
		f = newFixture()
	})

	Describe("initializing", func() {
		It("shows the intro heading without shading anything", func() {
			f.player.Start()
			Expect(f.player.State()).To(Equal(player.Initializing))
			Expect(f.surface.heading).To(ContainSubstring("increased drastically"))
			Expect(f.surface.fills).To(BeEmpty())
			_, ok := f.player.CurrentYear()
			Expect(ok).To(BeFalse())
		})

		It("rejects input before auto-play finishes", func() {
			f.player.Start()
			err := f.player.Handle(player.YearSelected{Year: 1995})
			Expect(err).To(MatchError(player.ErrNotInteractive))
		})
	})

	Describe("auto-play", func() {
		It("steps through every year once and then becomes interactive", func() {
			f.player.Start()
			Expect(f.player.BeginAutoPlay()).To(BeTrue())
			Expect(f.player.State()).To(Equal(player.AutoPlaying))

			Expect(f.player.Tick()).To(BeTrue())
			year, _ := f.player.CurrentYear()
			Expect(year).To(Equal(1995))
			Expect(f.player.State()).To(Equal(player.AutoPlaying))

			Expect(f.player.Tick()).To(BeFalse())
			year, _ = f.player.CurrentYear()
			Expect(year).To(Equal(2000))
			Expect(f.player.State()).To(Equal(player.Interactive))

			Expect(f.surface.headings).To(Equal([]string{
				player.DefaultText().Intro,
				"Internet Users per hundred people: 1995",
				"Internet Users per hundred people: 2000",
			}))
		})

		It("never re-enters auto-play", func() {
			f.autoPlay()
			Expect(f.player.Tick()).To(BeFalse())
			Expect(f.player.BeginAutoPlay()).To(BeFalse())
			year, _ := f.player.CurrentYear()
			Expect(year).To(Equal(2000))
			Expect(f.surface.fillCount["France"]).To(Equal(2))
		})

		It("shades every entity on every step and updates the legend", func() {
			f.player.Start()
			f.player.BeginAutoPlay()
			f.player.Tick()

			Expect(f.surface.fill("United States")).To(Equal(f.color(10)))
			Expect(f.surface.fill("France")).To(Equal(f.color(5)))
			Expect(f.surface.fill("Chad")).To(Equal(scale.DefaultNoData))
			Expect(f.surface.legendCalls).To(Equal(1))

			f.player.Tick()
			Expect(f.surface.fill("United States")).To(Equal(scale.DefaultNoData))
			Expect(f.surface.fill("France")).To(Equal("#ff0000"))
			Expect(f.surface.legendCalls).To(Equal(2))
		})

		It("opens the year picker on the most recent year", func() {
			f.autoPlay()
			Expect(f.surface.picker).To(Equal([]int{1995, 2000}))
			Expect(f.surface.selected).To(Equal(2000))
			Expect(f.surface.caption).To(Equal(player.DefaultText().Hint))
			Expect(f.surface.attribution).To(ContainSubstring("gapminder"))
		})

		It("goes straight to interactive without years", func() {
			p := player.New(f.store, nil, f.scale, f.surface, player.DefaultOptions())
			p.Start()
			Expect(p.BeginAutoPlay()).To(BeFalse())
			Expect(p.State()).To(Equal(player.Interactive))
			_, ok := p.CurrentYear()
			Expect(ok).To(BeFalse())
		})

		It("can be skipped", func() {
			f.player.Start()
			f.player.BeginAutoPlay()
			Expect(f.player.Handle(player.Skip{})).To(Succeed())
			Expect(f.player.State()).To(Equal(player.Interactive))
			year, _ := f.player.CurrentYear()
			Expect(year).To(Equal(2000))
			Expect(f.surface.fill("France")).To(Equal("#ff0000"))
			Expect(f.player.Tick()).To(BeFalse())
		})
	})

	Describe("interactive", func() {
		BeforeEach(func() {
			f.autoPlay()
		})

		It("re-shades through the same routine on year selection", func() {
			Expect(f.player.Handle(player.YearSelected{Year: 1995})).To(Succeed())
			year, _ := f.player.CurrentYear()
			Expect(year).To(Equal(1995))
			Expect(f.surface.fill("United States")).To(Equal(f.color(10)))
			Expect(f.surface.fill("France")).To(Equal(f.color(5)))
			Expect(f.surface.fill("France")).NotTo(Equal(f.color(10)))
			Expect(f.surface.heading).To(Equal("Internet Users per hundred people: 1995"))
		})

		It("moves the picker selection to the chosen year", func() {
			Expect(f.surface.selected).To(Equal(2000))
			Expect(f.player.Handle(player.YearSelected{Year: 1995})).To(Succeed())
			Expect(f.surface.selected).To(Equal(1995))
			Expect(f.surface.picker).To(Equal([]int{1995, 2000}))
		})

		It("rejects years outside the dataset", func() {
			err := f.player.Handle(player.YearSelected{Year: 1990})
			Expect(err).To(MatchError(player.ErrUnknownYear))
			year, _ := f.player.CurrentYear()
			Expect(year).To(Equal(2000))
		})

		It("labels a hovered entity and removes the label on hover end", func() {
			Expect(f.player.Handle(player.HoverStart{Name: "France", X: 12, Y: 7})).To(Succeed())
			text := f.surface.labelText()
			Expect(text).To(ContainSubstring("France"))
			Expect(text).To(ContainSubstring("2000"))
			Expect(text).To(ContainSubstring("20"))
			Expect(f.surface.label.X).To(Equal(12))
			Expect(f.surface.label.Y).To(Equal(7))
			Expect(f.surface.highlighted["France"]).To(BeTrue())

			Expect(f.player.Handle(player.HoverEnd{Name: "France"})).To(Succeed())
			Expect(f.surface.labelText()).To(BeEmpty())
			Expect(f.surface.highlighted["France"]).To(BeFalse())
			_, hovering := f.player.Hovered()
			Expect(hovering).To(BeFalse())
		})

		It("labels missing data as such", func() {
			Expect(f.player.Handle(player.HoverStart{Name: "Chad"})).To(Succeed())
			Expect(f.surface.labelText()).To(Equal("Chad\n2000\nno data"))
		})

		It("refreshes an open label when the year changes", func() {
			Expect(f.player.Handle(player.HoverStart{Name: "United States"})).To(Succeed())
			Expect(f.surface.labelText()).To(HaveSuffix("no data"))
			Expect(f.player.Handle(player.YearSelected{Year: 1995})).To(Succeed())
			Expect(f.surface.labelText()).To(Equal("United States\n1995\n10"))
		})

		It("moves the highlight when hover jumps between entities", func() {
			Expect(f.player.Handle(player.HoverStart{Name: "France"})).To(Succeed())
			Expect(f.player.Handle(player.HoverStart{Name: "Chad"})).To(Succeed())
			Expect(f.surface.highlighted["France"]).To(BeFalse())
			Expect(f.surface.highlighted["Chad"]).To(BeTrue())
			name, _ := f.player.Hovered()
			Expect(name).To(Equal("Chad"))
		})

		It("rejects hover on unknown entities", func() {
			err := f.player.Handle(player.HoverStart{Name: "Atlantis"})
			Expect(err).To(MatchError(player.ErrUnknownEntity))
		})

		It("keeps entities without any observation as no data in every year", func() {
			for _, y := range f.years {
				Expect(f.player.Handle(player.YearSelected{Year: y})).To(Succeed())
				Expect(f.surface.fill("Chad")).To(Equal(scale.DefaultNoData))
			}
		})
	})

	Describe("Run", func() {
		It("auto-plays on the clock and stops the ticker once", func() {
			clock := newFakeClock()
			events := make(chan player.Event)
			done := make(chan error, 1)
			go func() { done <- f.player.Run(context.Background(), clock, events) }()

			clock.after <- time.Now()
			clock.ticker.c <- time.Now()
			clock.ticker.c <- time.Now()

			events <- player.HoverStart{Name: "France", X: 1, Y: 2}
			close(events)
			Expect(<-done).To(Succeed())

			Expect(f.player.State()).To(Equal(player.Interactive))
			year, _ := f.player.CurrentYear()
			Expect(year).To(Equal(2000))
			Expect(f.surface.headings).To(HaveLen(3))
			Expect(f.surface.headings[1]).To(HaveSuffix("1995"))
			Expect(f.surface.headings[2]).To(HaveSuffix("2000"))
			started, stops := clock.ticker.counts()
			Expect(started).To(Equal(1))
			Expect(stops).To(Equal(1))
			Expect(f.surface.labelText()).To(ContainSubstring("France"))
		})

		It("returns when the context is canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- f.player.Run(ctx, newFakeClock(), nil) }()
			cancel()
			Eventually(done).Should(Receive(BeNil()))
			Expect(f.player.State()).To(Equal(player.Initializing))
		})
	})
})

var _ = Describe("FormatValue", func() {
	DescribeTable("rounds to two decimals",
		func(v float64, want string) {
			Expect(player.FormatValue(v)).To(Equal(want))
		},
		Entry("integer", 20.0, "20"),
		Entry("rounded down", 3.14159, "3.14"),
		Entry("rounded up", 0.005, "0.01"),
		Entry("zero", 0.0, "0"),
	)
})
