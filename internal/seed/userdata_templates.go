package seed

// controllerUserdata boots etcd (when not dedicated), flanneld, and the
// static-pod control plane manifests, decrypting the KMS-wrapped TLS
// material the renderer stages in the context's *B64 fields before kubelet
// starts.
const controllerUserdata = `#cloud-config
coreos:
  update:
    reboot-strategy: etcd-lock
  flannel:
    interface: $private_ipv4
    etcd_endpoints: {{range index .Config "etcd_ips"}}http://{{.}}:2379,{{end}}
  {{if not (index .Config "dedicated_etcd")}}
  etcd2:
    name: controller-{{.Index}}
    advertise-client-urls: http://$private_ipv4:2379,http://{{.ControllerELBDNS}}:2379
    initial-advertise-peer-urls: http://$private_ipv4:2380
    initial-cluster: controller-{{.Index}}=http://$private_ipv4:2380
    listen-client-urls: http://0.0.0.0:2379
    listen-peer-urls: http://0.0.0.0:2380
  units:
    - name: etcd2.service
      command: start
  {{else}}
  units:
  {{end}}
    - name: docker.service
      drop-ins:
        - name: 40-flannel.conf
          content: |
            [Unit]
            Requires=flanneld.service
            After=flanneld.service

    - name: flanneld.service
      drop-ins:
        - name: 10-etcd.conf
          content: |
            [Service]
            ExecStartPre=/usr/bin/curl --silent -X PUT -d \
            "value={\"Network\" : \"{{index .Config "pods_cidr"}}\", \"Backend\" : {\"Type\" : \"vxlan\"}}" \
            {{if index .Config "dedicated_etcd"}}http://{{.EtcdELBDNS}}:2379{{else}}http://localhost:2379{{end}}/v2/keys/coreos.com/network/config?prevExist=false

    - name: kubelet.service
      command: start
      enable: true
      content: |
        [Service]
        Environment=KUBELET_IMAGE_TAG=v{{index .Config "kubernetes_version"}}
        ExecStart=/usr/lib/coreos/kubelet-wrapper \
        --network-plugin-dir=/etc/kubernetes/cni/net.d \
        --register-schedulable=false \
        --allow-privileged=true \
        --config=/etc/kubernetes/manifests \
        --cluster-dns={{index .Config "cluster_dns_ip"}} \
        --cluster-domain=cluster.local \
        --cloud-provider=aws
        Restart=always
        RestartSec=10

        [Install]
        WantedBy=multi-user.target

    - name: decrypt-tls-assets.service
      enable: true
      content: |
        [Unit]
        Description=decrypt kubelet tls assets using amazon kms
        Before=kubelet.service
        After=docker.service
        Requires=docker.service

        [Service]
        Type=oneshot
        RemainAfterExit=yes
        ExecStart=/opt/bin/decrypt-tls-assets

        [Install]
        RequiredBy=kubelet.service

write_files:
  - path: /opt/bin/decrypt-tls-assets
    owner: root:root
    permissions: 0700
    content: |
      #!/bin/bash -e
      for encKey in $(find /etc/kubernetes/ssl/*.pem.enc); do
        tmpPath="/tmp/$(basename $encKey).tmp"
        aws --region {{.Region}} kms decrypt --ciphertext-blob fileb://$encKey \
          --output text --query Plaintext | base64 --decode > $tmpPath
        mv $tmpPath /etc/kubernetes/ssl/$(basename $encKey .enc)
      done

  - path: /etc/kubernetes/manifests/kube-apiserver.yaml
    content: |
      apiVersion: v1
      kind: Pod
      metadata:
        name: kube-apiserver
        namespace: kube-system
      spec:
        hostNetwork: true
        containers:
        - name: kube-apiserver
          image: registry.k8s.io/kube-apiserver:v{{index .Config "kubernetes_version"}}
          command:
          - kube-apiserver
          - --bind-address=0.0.0.0
          - --etcd-servers={{range index .Config "etcd_ips"}}http://{{.}}:2379,{{end}}
          - --allow-privileged=true
          - --service-cluster-ip-range={{index .Config "services_cidr"}}
          - --secure-port=443
          - --advertise-address=$private_ipv4
          - --tls-cert-file=/etc/kubernetes/ssl/apiserver.pem
          - --tls-private-key-file=/etc/kubernetes/ssl/apiserver-key.pem
          - --client-ca-file=/etc/kubernetes/ssl/ca.pem
          - --service-account-key-file=/etc/kubernetes/ssl/apiserver-key.pem
          - --cloud-provider=aws
          ports:
          - containerPort: 443
            hostPort: 443
            name: https
          volumeMounts:
          - mountPath: /etc/kubernetes/ssl
            name: ssl-certs-kubernetes
            readOnly: true
        volumes:
        - hostPath:
            path: /etc/kubernetes/ssl
          name: ssl-certs-kubernetes

  - path: /etc/kubernetes/manifests/kube-controller-manager.yaml
    content: |
      apiVersion: v1
      kind: Pod
      metadata:
        name: kube-controller-manager
        namespace: kube-system
      spec:
        hostNetwork: true
        containers:
        - name: kube-controller-manager
          image: registry.k8s.io/kube-controller-manager:v{{index .Config "kubernetes_version"}}
          command:
          - kube-controller-manager
          - --leader-elect=true
          - --service-account-private-key-file=/etc/kubernetes/ssl/apiserver-key.pem
          - --root-ca-file=/etc/kubernetes/ssl/ca.pem
          - --cloud-provider=aws
          volumeMounts:
          - mountPath: /etc/kubernetes/ssl
            name: ssl-certs-kubernetes
            readOnly: true
        volumes:
        - hostPath:
            path: /etc/kubernetes/ssl
          name: ssl-certs-kubernetes

  - path: /etc/kubernetes/manifests/kube-scheduler.yaml
    content: |
      apiVersion: v1
      kind: Pod
      metadata:
        name: kube-scheduler
        namespace: kube-system
      spec:
        hostNetwork: true
        containers:
        - name: kube-scheduler
          image: registry.k8s.io/kube-scheduler:v{{index .Config "kubernetes_version"}}
          command:
          - kube-scheduler
          - --leader-elect=true

  - path: /etc/kubernetes/ssl/ca.pem.enc
    encoding: gzip+base64
    content: {{.CACertB64}}

  - path: /etc/kubernetes/ssl/apiserver.pem.enc
    encoding: gzip+base64
    content: {{.APIServerCertB64}}

  - path: /etc/kubernetes/ssl/apiserver-key.pem.enc
    encoding: gzip+base64
    content: {{.APIServerKeyB64}}
`

// workerUserdata boots flanneld and kubelet against the controller ELB,
// decrypting its worker TLS material the same way the controller does.
const workerUserdata = `#cloud-config
coreos:
  update:
    reboot-strategy: etcd-lock
  flannel:
    interface: $private_ipv4
    etcd_endpoints: {{range index .Config "etcd_ips"}}http://{{.}}:2379,{{end}}
  units:
    - name: docker.service
      drop-ins:
        - name: 40-flannel.conf
          content: |
            [Unit]
            Requires=flanneld.service
            After=flanneld.service

    - name: kubelet.service
      enable: true
      command: start
      content: |
        [Service]
        ExecStart=/usr/lib/coreos/kubelet-wrapper \
        --network-plugin-dir=/etc/kubernetes/cni/net.d \
        --register-node=true \
        --allow-privileged=true \
        --config=/etc/kubernetes/manifests \
        --cluster-dns={{index .Config "cluster_dns_ip"}} \
        --cluster-domain=cluster.local \
        --cloud-provider=aws \
        --kubeconfig=/etc/kubernetes/worker-kubeconfig.yaml \
        --tls-cert-file=/etc/kubernetes/ssl/worker.pem \
        --tls-private-key-file=/etc/kubernetes/ssl/worker-key.pem
        Restart=always
        RestartSec=10
        [Install]
        WantedBy=multi-user.target

    - name: decrypt-tls-assets.service
      enable: true
      content: |
        [Unit]
        Description=decrypt kubelet tls assets using amazon kms
        Before=kubelet.service
        After=docker.service
        Requires=docker.service

        [Service]
        Type=oneshot
        RemainAfterExit=yes
        ExecStart=/opt/bin/decrypt-tls-assets

        [Install]
        RequiredBy=kubelet.service

write_files:
  - path: /etc/kubernetes/ssl/ca.pem.enc
    encoding: gzip+base64
    content: {{.CACertB64}}

  - path: /etc/kubernetes/ssl/worker.pem.enc
    encoding: gzip+base64
    content: {{.WorkerCertB64}}

  - path: /etc/kubernetes/ssl/worker-key.pem.enc
    encoding: gzip+base64
    content: {{.WorkerKeyB64}}

  - path: /opt/bin/decrypt-tls-assets
    owner: root:root
    permissions: 0700
    content: |
      #!/bin/bash -e
      for encKey in $(find /etc/kubernetes/ssl/*.pem.enc); do
        tmpPath="/tmp/$(basename $encKey).tmp"
        aws --region {{.Region}} kms decrypt --ciphertext-blob fileb://$encKey \
          --output text --query Plaintext | base64 --decode > $tmpPath
        mv $tmpPath /etc/kubernetes/ssl/$(basename $encKey .enc)
      done

  - path: /etc/kubernetes/worker-kubeconfig.yaml
    content: |
      apiVersion: v1
      kind: Config
      clusters:
      - name: local
        cluster:
          certificate-authority: /etc/kubernetes/ssl/ca.pem
          server: https://{{.ControllerELBDNS}}:443
      users:
      - name: kubelet
        user:
          client-certificate: /etc/kubernetes/ssl/worker.pem
          client-key: /etc/kubernetes/ssl/worker-key.pem
      contexts:
      - context:
          cluster: local
          user: kubelet
        name: kubelet-context
      current-context: kubelet-context
`

// etcdUserdata boots a standalone etcd2 peer; used only when a tier's
// configuration sets dedicated_etcd.
const etcdUserdata = `#cloud-config
coreos:
  update:
    reboot-strategy: etcd-lock
  etcd2:
    name: etcd-{{.Index}}
    advertise-client-urls: http://$private_ipv4:2379,http://{{.EtcdELBDNS}}:2379
    initial-advertise-peer-urls: http://$private_ipv4:2380
    initial-cluster: etcd-{{.Index}}=http://$private_ipv4:2380
    listen-client-urls: http://0.0.0.0:2379
    listen-peer-urls: http://0.0.0.0:2380
  units:
    - name: etcd2.service
      command: start
`
