/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Command manager runs the Poolboy operator: the ResourceClaim,
// ResourceHandle and ResourcePool reconcilers described in spec.md §4,
// sharing one internal/controller.Runtime built from the environment
// contract in spec.md §6.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap/zapcore"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/event"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"

	poolboyv1 "github.com/redhat-cop/poolboy/api/v1"
	ctrlshared "github.com/redhat-cop/poolboy/internal/controller"
	"github.com/redhat-cop/poolboy/internal/controller/claim"
	"github.com/redhat-cop/poolboy/internal/controller/handle"
	"github.com/redhat-cop/poolboy/internal/controller/pool"
	"github.com/redhat-cop/poolboy/internal/config"
	"github.com/redhat-cop/poolboy/internal/index"
	"github.com/redhat-cop/poolboy/internal/providers"
	"github.com/redhat-cop/poolboy/internal/requester"
	"github.com/redhat-cop/poolboy/internal/watch"
)

var scheme = clientgoscheme.Scheme

func init() {
	if err := poolboyv1.AddToScheme(scheme); err != nil {
		panic(err)
	}
}

func main() {
	var probeAddr string
	var enableLeaderElection bool
	opts := zap.Options{Development: false}
	flag.StringVar(&probeAddr, "health-probe-bind-address", ":8081", "The address the probe endpoint binds to.")
	flag.BoolVar(&enableLeaderElection, "leader-elect", false, "Enable leader election for controller manager.")
	opts.BindFlags(flag.CommandLine)
	flag.Parse()

	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&opts), zap.Level(zapcore.InfoLevel)))
	log := ctrl.Log.WithName("setup")

	cfg, err := config.Load()
	if err != nil {
		log.Error(err, "loading configuration")
		os.Exit(1)
	}

	restConfig := ctrl.GetConfigOrDie()

	mgr, err := ctrl.NewManager(restConfig, ctrl.Options{
		Scheme:                 scheme,
		Metrics:                metricsserver.Options{BindAddress: fmt.Sprintf(":%d", cfg.MetricsPort)},
		HealthProbeBindAddress: probeAddr,
		LeaderElection:         enableLeaderElection,
		LeaderElectionID:       "poolboy-operator-lock",
	})
	if err != nil {
		log.Error(err, "creating manager")
		os.Exit(1)
	}

	dynClient, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		log.Error(err, "creating dynamic client")
		os.Exit(1)
	}
	coreClient, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		log.Error(err, "creating core client")
		os.Exit(1)
	}

	handleEvents := make(chan event.GenericEvent, 128)
	dispatcher := watch.DispatcherFunc(func(e watch.Event) {
		dispatchToHandle(e, cfg.OperatorDomain, handleEvents)
	})

	watchRegistry := watch.New(context.Background(), dynClient, mgr.GetRESTMapper(), cfg.ResourceRefreshInterval, dispatcher)

	providerRegistry := providers.NewRegistry()
	if err := preloadProviders(restConfig, providerRegistry); err != nil {
		log.Error(err, "preloading resource providers")
		os.Exit(1)
	}

	idx := index.New()
	req := requester.New(coreClient, dynClient)
	runtime := ctrlshared.New(cfg, providerRegistry, idx, watchRegistry, req, dynClient, mgr.GetRESTMapper())

	if err := (&claim.Reconciler{
		Client:   mgr.GetClient(),
		Scheme:   mgr.GetScheme(),
		Recorder: mgr.GetEventRecorderFor("poolboy-resourceclaim"),
		Runtime:  runtime,
	}).SetupWithManager(mgr); err != nil {
		log.Error(err, "setting up resourceclaim controller")
		os.Exit(1)
	}

	if err := (&handle.Reconciler{
		Client:   mgr.GetClient(),
		Scheme:   mgr.GetScheme(),
		Recorder: mgr.GetEventRecorderFor("poolboy-resourcehandle"),
		Runtime:  runtime,
		Trigger:  handleEvents,
	}).SetupWithManager(mgr); err != nil {
		log.Error(err, "setting up resourcehandle controller")
		os.Exit(1)
	}

	if err := (&pool.Reconciler{
		Client:   mgr.GetClient(),
		Scheme:   mgr.GetScheme(),
		Recorder: mgr.GetEventRecorderFor("poolboy-resourcepool"),
		Runtime:  runtime,
	}).SetupWithManager(mgr); err != nil {
		log.Error(err, "setting up resourcepool controller")
		os.Exit(1)
	}

	if err := (&providerSyncer{Client: mgr.GetClient(), Registry: providerRegistry}).SetupWithManager(mgr); err != nil {
		log.Error(err, "setting up resourceprovider registry sync")
		os.Exit(1)
	}

	if err := mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
		log.Error(err, "setting up health check")
		os.Exit(1)
	}
	if err := mgr.AddReadyzCheck("readyz", healthz.Ping); err != nil {
		log.Error(err, "setting up ready check")
		os.Exit(1)
	}

	log.Info("starting manager")
	if err := mgr.Start(ctrl.SetupSignalHandler()); err != nil {
		log.Error(err, "problem running manager")
		os.Exit(1)
	}
}

// dispatchToHandle turns a downstream-resource watch event into a
// GenericEvent naming the owning ResourceHandle, so a change to a
// resource the operator doesn't otherwise watch still wakes up the
// handle reconciler that owns it (spec.md §4.4 step 8's "re-reconcile
// on drift").
func dispatchToHandle(e watch.Event, domain string, out chan<- event.GenericEvent) {
	if e.Object == nil {
		return
	}
	namespace, name, ok := watch.Annotations(e.Object, domain)
	if !ok {
		return
	}
	obj := &unstructured.Unstructured{}
	obj.SetAPIVersion(poolboyv1.GroupVersion.String())
	obj.SetKind("ResourceHandle")
	obj.SetName(name)
	obj.SetNamespace(namespace)
	select {
	case out <- event.GenericEvent{Object: obj}:
	default:
	}
}

// preloadProviders lists every ResourceProvider with a direct (non-cached)
// client before the registry starts serving reads, since the manager's
// cache isn't running yet at this point in startup.
func preloadProviders(restConfig *rest.Config, reg *providers.Registry) error {
	c, err := client.New(restConfig, client.Options{Scheme: scheme})
	if err != nil {
		return fmt.Errorf("building direct client for provider preload: %w", err)
	}
	list := &poolboyv1.ResourceProviderList{}
	if err := c.List(context.Background(), list); err != nil {
		return fmt.Errorf("listing resource providers: %w", err)
	}
	reg.Preload(list.Items)
	return nil
}
