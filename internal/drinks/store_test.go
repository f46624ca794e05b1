package drinks

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Store", func() {
	var (
		store *Store
		ctx   context.Context
	)

	BeforeEach(func() {
		dir, err := os.MkdirTemp("", "drinks-store-test")
		Expect(err).To(BeNil())
		DeferCleanup(func() {
			Expect(os.RemoveAll(dir)).To(Succeed())
		})

		store, err = Open(filepath.Join(dir, "drinks.db"))
		Expect(err).To(BeNil())
		DeferCleanup(func() {
			Expect(store.Close()).To(Succeed())
		})

		ctx = context.Background()
	})

	newDrink := func(title string) *Drink {
		return &Drink{
			Title: title,
			Recipe: []RecipePart{
				{Name: "water", Color: "blue", Parts: 1},
			},
		}
	}

	It("assigns ids on insert", func() {
		first := newDrink("water")
		second := newDrink("matcha latte")

		Expect(store.Insert(ctx, first)).To(Succeed())
		Expect(store.Insert(ctx, second)).To(Succeed())

		Expect(first.ID).NotTo(BeZero())
		Expect(second.ID).To(BeNumerically(">", first.ID))
	})

	It("round trips a drink through the database", func() {
		drink := newDrink("cortado")
		Expect(store.Insert(ctx, drink)).To(Succeed())

		loaded, err := store.Get(ctx, drink.ID)
		Expect(err).To(BeNil())
		Expect(loaded).To(Equal(*drink))
	})

	It("lists drinks ordered by id", func() {
		Expect(store.Insert(ctx, newDrink("first"))).To(Succeed())
		Expect(store.Insert(ctx, newDrink("second"))).To(Succeed())

		all, err := store.List(ctx)
		Expect(err).To(BeNil())
		Expect(all).To(HaveLen(2))
		Expect(all[0].Title).To(Equal("first"))
		Expect(all[1].Title).To(Equal("second"))
	})

	It("returns an empty list for an empty database", func() {
		all, err := store.List(ctx)
		Expect(err).To(BeNil())
		Expect(all).To(BeEmpty())
	})

	It("rejects duplicate titles", func() {
		Expect(store.Insert(ctx, newDrink("cappuccino"))).To(Succeed())

		err := store.Insert(ctx, newDrink("cappuccino"))
		Expect(err).NotTo(BeNil())
	})

	It("updates title and recipe in place", func() {
		drink := newDrink("americano")
		Expect(store.Insert(ctx, drink)).To(Succeed())

		drink.Title = "long black"
		drink.Recipe = append(drink.Recipe, RecipePart{Name: "espresso", Color: "#6f4e37", Parts: 2})
		Expect(store.Update(ctx, drink)).To(Succeed())

		loaded, err := store.Get(ctx, drink.ID)
		Expect(err).To(BeNil())
		Expect(loaded.Title).To(Equal("long black"))
		Expect(loaded.Recipe).To(HaveLen(2))
	})

	It("reports a missing drink on update", func() {
		missing := newDrink("ghost")
		missing.ID = 12345

		Expect(store.Update(ctx, missing)).To(MatchError(ErrNotFound))
	})

	It("deletes drinks", func() {
		drink := newDrink("mocha")
		Expect(store.Insert(ctx, drink)).To(Succeed())

		Expect(store.Delete(ctx, drink.ID)).To(Succeed())

		_, err := store.Get(ctx, drink.ID)
		Expect(err).To(MatchError(ErrNotFound))
	})

	It("reports a missing drink on delete", func() {
		Expect(store.Delete(ctx, 12345)).To(MatchError(ErrNotFound))
	})

	It("honors an already cancelled context", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := store.List(cancelled)
		Expect(err).To(MatchError(context.Canceled))
	})
})
