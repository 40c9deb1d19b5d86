package motion_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/motion"
)

type memStore struct {
	values map[string]string
	writes int
	err    error
}

func newMemStore() *memStore {
	return &memStore{values: map[string]string{}}
}

func (m *memStore) Get(key string) (string, bool, error) {
	if m.err != nil {
		return "", false, m.err
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memStore) Set(key, value string) error {
	if m.err != nil {
		return m.err
	}
	m.writes++
	m.values[key] = value
	return nil
}

func (m *memStore) Delete(key string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.values, key)
	return nil
}

type applied struct {
	settings field.Settings
	enabled  bool
}

var _ = Describe("Policy", func() {
	var (
		store      *memStore
		calls      []applied
		indicators []bool
		policy     *motion.Policy
	)

	BeforeEach(func() {
		store = newMemStore()
		calls = nil
		indicators = nil
		policy = motion.New(store, func(s field.Settings, enabled bool) {
			calls = append(calls, applied{s, enabled})
		}, motion.WithIndicator(func(on bool) {
			indicators = append(indicators, on)
		}))
	})

	Describe("Resolve", func() {
		It("uses a stored off over a quiet system signal", func() {
			store.values[motion.PreferenceKey] = "off"
			enabled, src := policy.Resolve(false)
			Expect(enabled).To(BeFalse())
			Expect(src).To(Equal(motion.System))
		})

		It("uses a stored on over a reduced system signal", func() {
			store.values[motion.PreferenceKey] = "on"
			enabled, _ := policy.Resolve(true)
			Expect(enabled).To(BeTrue())
		})

		It("follows the system signal without a stored preference", func() {
			enabled, src := policy.Resolve(true)
			Expect(enabled).To(BeFalse())
			Expect(src).To(Equal(motion.System))
		})

		It("defaults to enabled", func() {
			enabled, src := policy.Resolve(false)
			Expect(enabled).To(BeTrue())
			Expect(src).To(Equal(motion.System))
		})

		It("treats an unreadable store as no preference", func() {
			store.err = errors.New("disk gone")
			enabled, _ := policy.Resolve(true)
			Expect(enabled).To(BeFalse())
		})

		It("ignores a garbage stored value", func() {
			store.values[motion.PreferenceKey] = "sideways"
			enabled, _ := policy.Resolve(false)
			Expect(enabled).To(BeTrue())
		})
	})

	Describe("Init", func() {
		It("applies the resolved preset without storing it", func() {
			Expect(policy.Init(true)).To(BeFalse())
			Expect(calls).To(Equal([]applied{{field.ReducedSettings(), false}}))
			Expect(indicators).To(Equal([]bool{false}))
			Expect(store.writes).To(BeZero())
			Expect(policy.Source()).To(Equal(motion.System))
		})
	})

	Describe("Apply", func() {
		It("selects the enabled preset", func() {
			policy.Apply(true, motion.System)
			Expect(calls).To(Equal([]applied{{field.DefaultSettings(), true}}))
			Expect(policy.Settings()).To(Equal(field.DefaultSettings()))
		})

		It("stores only user changes", func() {
			policy.Apply(false, motion.System)
			Expect(store.values).To(BeEmpty())

			policy.Apply(false, motion.User)
			Expect(store.values).To(HaveKeyWithValue(motion.PreferenceKey, "off"))

			policy.SetEnabled(true, motion.User)
			Expect(store.values).To(HaveKeyWithValue(motion.PreferenceKey, "on"))
			Expect(store.writes).To(Equal(2))
		})

		It("keeps animating when the store fails", func() {
			store.err = errors.New("read-only")
			policy.Apply(false, motion.User)
			Expect(policy.Enabled()).To(BeFalse())
			Expect(calls).To(HaveLen(1))
		})

		It("honours custom presets", func() {
			on := field.Settings{ParticleCount: 200, ConnectionDistance: 90, PointerRadius: 60}
			off := field.Settings{ParticleCount: 10}
			p := motion.New(nil, func(s field.Settings, enabled bool) {
				calls = append(calls, applied{s, enabled})
			}, motion.WithPresets(on, off))

			calls = nil
			p.Apply(true, motion.User)
			p.Apply(false, motion.User)
			Expect(calls).To(Equal([]applied{{on, true}, {off, false}}))
		})
	})

	Describe("Toggle", func() {
		It("flips state as a user change", func() {
			policy.Init(false)
			Expect(policy.Toggle()).To(BeFalse())
			Expect(policy.Source()).To(Equal(motion.User))
			Expect(store.values).To(HaveKeyWithValue(motion.PreferenceKey, "off"))

			Expect(policy.Toggle()).To(BeTrue())
			Expect(store.values).To(HaveKeyWithValue(motion.PreferenceKey, "on"))
			Expect(indicators).To(Equal([]bool{true, false, true}))
		})
	})

	Describe("SystemChanged", func() {
		It("follows the system while nothing is stored", func() {
			policy.Init(false)
			Expect(policy.SystemChanged(true)).To(BeTrue())
			Expect(policy.Enabled()).To(BeFalse())
			Expect(policy.SystemChanged(false)).To(BeTrue())
			Expect(policy.Enabled()).To(BeTrue())
			Expect(store.writes).To(BeZero())
		})

		It("is ignored once the user has chosen", func() {
			store.values[motion.PreferenceKey] = "on"
			policy.Init(false)
			Expect(policy.SystemChanged(true)).To(BeFalse())
			Expect(policy.Enabled()).To(BeTrue())
		})

		It("is ignored after a toggle", func() {
			policy.Init(false)
			policy.Toggle()
			policy.Toggle()
			Expect(policy.SystemChanged(true)).To(BeFalse())
			Expect(policy.Enabled()).To(BeTrue())
		})

		It("resumes after Forget", func() {
			policy.Init(false)
			policy.Toggle()
			Expect(policy.Forget()).To(Succeed())
			Expect(policy.SystemChanged(false)).To(BeTrue())
			Expect(policy.Enabled()).To(BeTrue())
		})
	})

	Describe("Indicator", func() {
		It("mirrors every applied state", func() {
			ind := &motion.Indicator{}
			p := motion.New(store, nil, motion.WithIndicator(ind.Set))

			p.Init(false)
			Expect(ind.On()).To(BeTrue())
			p.Toggle()
			Expect(ind.On()).To(BeFalse())
			Expect(p.SystemChanged(false)).To(BeFalse())
			Expect(ind.On()).To(BeFalse())
		})
	})

	Describe("preference values", func() {
		It("round-trips on and off", func() {
			for _, on := range []bool{true, false} {
				v := motion.FormatPreference(on)
				got, err := motion.ParsePreference(v)
				Expect(err).NotTo(HaveOccurred())
				Expect(got).To(Equal(on))
			}
		})

		It("rejects anything else", func() {
			_, err := motion.ParsePreference("maybe")
			Expect(err).To(MatchError(motion.ErrInvalidPreference))
		})
	})
})
